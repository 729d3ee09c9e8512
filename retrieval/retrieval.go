// Package retrieval issues the fetch attempts against the marketplace's
// upstream sources. Each strategy produces a full RetrievalTrace — every
// attempt is retained, successful or not, so failures ship with evidence.
package retrieval

import (
	"context"

	"github.com/Johnpittz/ecom/models"
)

// Strategy retrieves one document for a query, recording every attempt.
type Strategy interface {
	Fetch(ctx context.Context, query string) (models.RetrievalTrace, error)
}
