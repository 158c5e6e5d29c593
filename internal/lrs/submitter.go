// Package lrs forwards xAPI statements to a Learning Record Store.
package lrs

//go:generate mockgen -source=submitter.go -destination=../mocks/lrs/mock_submitter.go -package=mock_lrs

import (
	"context"

	"github.com/at-ishikawa/playtrack/internal/xapi"
)

// Submitter delivers statements to a Learning Record Store.
type Submitter interface {
	Submit(ctx context.Context, statement xapi.Statement) error
}

// NoopSubmitter discards every statement. It is used when no LRS is configured.
type NoopSubmitter struct{}

func (NoopSubmitter) Submit(context.Context, xapi.Statement) error {
	return nil
}
