package collections

import (
	"errors"
	"fmt"

	"github.com/pocketbase/pocketbase/core"
)

// ErrAppendOnly is returned when a logged time or equipment row is modified.
var ErrAppendOnly = errors.New("log rows are append-only")

// RegisterAppendOnlyGuards rejects updates of time and equipment log rows.
// Rows are only removed together with their project.
func RegisterAppendOnlyGuards(app core.App) {
	app.OnRecordUpdate(TimeEntries, MachineUsage).BindFunc(func(e *core.RecordEvent) error {
		return fmt.Errorf("%w: %s/%s", ErrAppendOnly, e.Record.Collection().Name, e.Record.Id)
	})
}
