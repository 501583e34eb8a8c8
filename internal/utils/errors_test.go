package utils

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestTranslateStoreError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil passes through", nil, nil},
		{"no documents is not found", mongo.ErrNoDocuments, ErrNotFound},
		{"deadline is timeout", context.DeadlineExceeded, ErrTimeout},
		{"wrapped deadline is timeout", fmt.Errorf("write: %w", context.DeadlineExceeded), ErrTimeout},
		{"already translated not found", fmt.Errorf("user: %w", ErrNotFound), ErrNotFound},
		{"already translated timeout", ErrTimeout, ErrTimeout},
		{"opaque driver error is unavailability", errors.New("connection reset"), ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateStoreError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound, ErrInvalidMatch, ErrMatchIncomplete, ErrInvalidTransition,
		ErrUnauthorized, ErrForbidden, ErrTimeout, ErrStoreUnavailable, ErrInvalidInput,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.NotErrorIs(t, a, b)
		}
	}
}
