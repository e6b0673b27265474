package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sngm3741/delivery-availability/api/internal/availability"
)

// StoreDocument is the MongoDB shape of a store record. Schedule, pause and block
// are embedded so every sub-state write is a single-document $set.
type StoreDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Category    string             `bson:"category,omitempty"`
	Description string             `bson:"description,omitempty"`
	Schedule    []WindowDocument   `bson:"schedule"`
	Pause       PauseDocument      `bson:"pause"`
	Block       BlockDocument      `bson:"block"`
	IsActive    bool               `bson:"isActive"`
	CreatedAt   *time.Time         `bson:"createdAt,omitempty"`
	UpdatedAt   *time.Time         `bson:"updatedAt,omitempty"`
}

// WindowDocument is one opening window. Times are kept as "HH:MM" strings.
type WindowDocument struct {
	Weekday  int    `bson:"weekday"`
	OpensAt  string `bson:"opensAt"`
	ClosesAt string `bson:"closesAt"`
}

// PauseDocument stores the pause sub-state. The zero value is NONE.
type PauseDocument struct {
	Active    bool       `bson:"active"`
	Reason    string     `bson:"reason,omitempty"`
	StartedAt *time.Time `bson:"startedAt,omitempty"`
	ExpiresAt *time.Time `bson:"expiresAt,omitempty"`
}

// BlockDocument stores the block sub-state.
type BlockDocument struct {
	Blocked               bool    `bson:"blocked"`
	Reason                string  `bson:"reason,omitempty"`
	IsFinancialBlock      bool    `bson:"isFinancialBlock"`
	FinancialValue        float64 `bson:"financialValue,omitempty"`
	FinancialInstallments int     `bson:"financialInstallments,omitempty"`
}

func buildScheduleDocument(schedule availability.WeeklySchedule) []WindowDocument {
	windows := make([]WindowDocument, 0)
	for day, dayWindows := range schedule {
		for _, w := range dayWindows {
			windows = append(windows, WindowDocument{
				Weekday:  day,
				OpensAt:  w.OpensAt.String(),
				ClosesAt: w.ClosesAt.String(),
			})
		}
	}
	return windows
}

// mapSchedule drops windows that no longer parse; such a window reads as closed.
func mapSchedule(docs []WindowDocument) availability.WeeklySchedule {
	var schedule availability.WeeklySchedule
	for _, doc := range docs {
		if doc.Weekday < int(time.Sunday) || doc.Weekday > int(time.Saturday) {
			continue
		}
		opens, err := availability.ParseTimeOfDay(doc.OpensAt)
		if err != nil {
			continue
		}
		closes, err := availability.ParseTimeOfDay(doc.ClosesAt)
		if err != nil {
			continue
		}
		schedule[doc.Weekday] = append(schedule[doc.Weekday], availability.Window{OpensAt: opens, ClosesAt: closes})
	}
	return schedule
}

func buildPauseDocument(pause availability.Pause) PauseDocument {
	if !pause.Active {
		return PauseDocument{}
	}
	doc := PauseDocument{
		Active: true,
		Reason: pause.Reason,
	}
	if !pause.StartedAt.IsZero() {
		startedAt := pause.StartedAt.UTC()
		doc.StartedAt = &startedAt
	}
	if pause.ExpiresAt != nil {
		expiresAt := pause.ExpiresAt.UTC()
		doc.ExpiresAt = &expiresAt
	}
	return doc
}

func mapPause(doc PauseDocument) availability.Pause {
	if !doc.Active {
		return availability.Pause{}
	}
	pause := availability.Pause{
		Active: true,
		Reason: doc.Reason,
	}
	if doc.StartedAt != nil {
		pause.StartedAt = doc.StartedAt.UTC()
	}
	if doc.ExpiresAt != nil {
		expiresAt := doc.ExpiresAt.UTC()
		pause.ExpiresAt = &expiresAt
	}
	return pause
}

func buildBlockDocument(block availability.Block) BlockDocument {
	if !block.Blocked {
		return BlockDocument{}
	}
	return BlockDocument{
		Blocked:               true,
		Reason:                block.Reason,
		IsFinancialBlock:      block.IsFinancialBlock,
		FinancialValue:        block.FinancialValue,
		FinancialInstallments: block.FinancialInstallments,
	}
}

func mapBlock(doc BlockDocument) availability.Block {
	if !doc.Blocked {
		return availability.Unblocked()
	}
	block := availability.Block{
		Blocked:          true,
		Reason:           doc.Reason,
		IsFinancialBlock: doc.IsFinancialBlock,
	}
	if doc.IsFinancialBlock {
		block.FinancialValue = doc.FinancialValue
		block.FinancialInstallments = doc.FinancialInstallments
	}
	return block
}

func timeValue(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.UTC()
}
