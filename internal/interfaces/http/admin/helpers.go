package admin

import (
	"time"

	adminapp "github.com/sngm3741/delivery-availability/api/internal/admin/application"
	admindomain "github.com/sngm3741/delivery-availability/api/internal/admin/domain"
	"github.com/sngm3741/delivery-availability/api/internal/availability"
	"github.com/sngm3741/delivery-availability/api/internal/interfaces/http/common"
)

// adminStoreDomainToResponse converts the admin aggregate into its JSON shape.
func adminStoreDomainToResponse(store admindomain.Store) adminStoreResponse {
	return adminStoreResponse{
		ID:          store.ID,
		Name:        store.Name.String(),
		Category:    store.Category.String(),
		Description: store.Description.String(),
		Schedule:    common.NewScheduleResponse(store.Schedule),
		Pause:       common.NewPauseResponse(store.Pause),
		Block:       store.Block,
		IsActive:    store.IsActive(),
		CreatedAt:   store.CreatedAt,
		UpdatedAt:   store.UpdatedAt,
	}
}

// buildScheduleCommand maps the weekday-indexed payload onto a command.
// Index 0 is Sunday; indexes past 6 are rejected by schedule validation.
func buildScheduleCommand(days [][]common.WindowPayload) adminapp.ScheduleCommand {
	cmd := adminapp.ScheduleCommand{Days: make(map[time.Weekday][]adminapp.WindowCommand, len(days))}
	for day, windows := range days {
		if len(windows) == 0 {
			continue
		}
		commands := make([]adminapp.WindowCommand, 0, len(windows))
		for _, w := range windows {
			commands = append(commands, adminapp.WindowCommand{OpensAt: w.OpensAt, ClosesAt: w.ClosesAt})
		}
		cmd.Days[time.Weekday(day)] = commands
	}
	return cmd
}

func isActive(block availability.Block) bool {
	return !block.Blocked
}
