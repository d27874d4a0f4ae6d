package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/campus-placement-api/internal/domain/entity"
)

func TestCanTransition(t *testing.T) {
	all := []entity.ApplicationStatus{
		entity.StatusApplied, entity.StatusSelected, entity.StatusNotSelected,
		entity.StatusAccepted, entity.StatusRejected,
	}
	allowed := map[[2]entity.ApplicationStatus]bool{
		{entity.StatusApplied, entity.StatusSelected}:    true,
		{entity.StatusApplied, entity.StatusNotSelected}: true,
		{entity.StatusSelected, entity.StatusAccepted}:   true,
		{entity.StatusSelected, entity.StatusRejected}:   true,
	}
	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]entity.ApplicationStatus{from, to}], entity.CanTransition(from, to),
				"%s -> %s", from, to)
		}
	}
}

func TestStatus_Clasificacion(t *testing.T) {
	assert.True(t, entity.StatusApplied.Live())
	assert.True(t, entity.StatusSelected.Live())
	assert.False(t, entity.StatusAccepted.Live())

	assert.True(t, entity.StatusAccepted.Terminal())
	assert.True(t, entity.StatusRejected.Terminal())
	assert.True(t, entity.StatusNotSelected.Terminal())
	assert.False(t, entity.StatusSelected.Terminal())

	assert.True(t, entity.StatusNotSelected.Reopenable())
	assert.True(t, entity.StatusRejected.Reopenable())
	assert.False(t, entity.StatusAccepted.Reopenable())
}
