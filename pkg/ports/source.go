package ports

import "github.com/aretw0/espalier/pkg/plan"

// PlanSource defines how the engine retrieves plan documents.
// This allows the storage layer (filesystem, memory) to be decoupled.
type PlanSource interface {
	// Get retrieves the raw bytes of a plan by ID, along with the format
	// they are serialized in.
	Get(id string) ([]byte, plan.Format, error)

	// List returns all available plan IDs, sorted.
	// This is used by plan pickers and the 'validate' command.
	List() ([]string, error)
}
