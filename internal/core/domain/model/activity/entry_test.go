package activity_test

import (
	"strings"
	"testing"
	"time"

	"parcelmybox/internal/core/domain/model/activity"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("CET", 3600))

	e, err := activity.NewEntry(kernel.NewUUID(), kernel.NewUUID(), activity.ActionShipmentCreated,
		activity.EntityTypeShipment, kernel.NewUUID(), strings.Repeat("é", activity.DescriptionMaxLength+20), now)

	require.NoError(t, err)
	assert.Equal(t, time.UTC, e.CreatedAt().Location())
	assert.Len(t, []rune(e.Description()), activity.DescriptionMaxLength)
}

func TestNewEntry_RequiresFields(t *testing.T) {
	_, err := activity.NewEntry(kernel.NewUUID(), kernel.UUID{}, " ", "", kernel.NewUUID(), "", time.Now())

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "action")
	assert.Contains(t, err.Error(), "entity type")
}
