// pkg/hooks/hooks.go
package hooks

import "context"

// Entities opt into lifecycle callbacks by implementing any of the
// interfaces below. A Before hook error aborts the operation before a
// statement is sent.

// --- Insert Hooks ---

type BeforeInserter interface {
	BeforeInsert(ctx context.Context) error
}

type AfterInserter interface {
	AfterInsert(ctx context.Context) error
}

// --- Update Hooks ---

type BeforeUpdater interface {
	BeforeUpdate(ctx context.Context) error
}

type AfterUpdater interface {
	AfterUpdate(ctx context.Context) error
}

// --- Delete Hooks ---

type BeforeDeleter interface {
	BeforeDelete(ctx context.Context) error
}

type AfterDeleter interface {
	AfterDelete(ctx context.Context) error
}

// --- Find Hooks ---

type AfterFinder interface {
	// Called for every entity hydrated from a row.
	AfterFind(ctx context.Context) error
}

// Stage is a point of an entity's lifecycle.
type Stage string

const (
	StageBeforeInsert Stage = "BeforeInsert"
	StageAfterInsert  Stage = "AfterInsert"
	StageBeforeUpdate Stage = "BeforeUpdate"
	StageAfterUpdate  Stage = "AfterUpdate"
	StageBeforeDelete Stage = "BeforeDelete"
	StageAfterDelete  Stage = "AfterDelete"
	StageAfterFind    Stage = "AfterFind"
)

// Run calls the hook of entity for stage, if it implements one.
func Run(ctx context.Context, stage Stage, entity any) error {
	switch stage {
	case StageBeforeInsert:
		if h, ok := entity.(BeforeInserter); ok {
			return h.BeforeInsert(ctx)
		}
	case StageAfterInsert:
		if h, ok := entity.(AfterInserter); ok {
			return h.AfterInsert(ctx)
		}
	case StageBeforeUpdate:
		if h, ok := entity.(BeforeUpdater); ok {
			return h.BeforeUpdate(ctx)
		}
	case StageAfterUpdate:
		if h, ok := entity.(AfterUpdater); ok {
			return h.AfterUpdate(ctx)
		}
	case StageBeforeDelete:
		if h, ok := entity.(BeforeDeleter); ok {
			return h.BeforeDelete(ctx)
		}
	case StageAfterDelete:
		if h, ok := entity.(AfterDeleter); ok {
			return h.AfterDelete(ctx)
		}
	case StageAfterFind:
		if h, ok := entity.(AfterFinder); ok {
			return h.AfterFind(ctx)
		}
	}
	return nil
}
