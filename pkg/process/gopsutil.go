package process

import (
	"context"
	"errors"

	gproc "github.com/shirou/gopsutil/v4/process"
)

// GopsutilLister enumerates processes through gopsutil. It needs no
// elevated privileges: processes whose name cannot be read are skipped.
type GopsutilLister struct{}

// Names returns the names of all readable processes.
func (GopsutilLister) Names(ctx context.Context) ([]string, error) {
	procs, err := gproc.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	if len(procs) == 0 {
		return nil, errors.New("process table is empty")
	}

	names := make([]string, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			// Process exited or is not ours to inspect.
			continue
		}
		names = append(names, name)
	}
	return names, nil
}
