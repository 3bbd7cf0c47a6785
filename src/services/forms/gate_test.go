package forms

import (
	"testing"
	"time"

	"Backend-FormCraft/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func intPtr(v int) *int { return &v }

func activeForm() *models.Form {
	return &models.Form{
		ID:     primitive.NewObjectID(),
		Title:  "Event feedback",
		Status: models.FormStatusActive,
		Settings: models.FormSettings{
			IsPublic:       true,
			AllowAnonymous: true,
		},
	}
}

func authedIdentity() models.SubmitterIdentity {
	id := primitive.NewObjectID()
	return models.SubmitterIdentity{UserID: &id}
}

func TestCheckSubmittable(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("TestAcceptsOpenForm", func(t *testing.T) {
		assert.Nil(t, CheckSubmittable(activeForm(), models.SubmitterIdentity{}, now))
	})

	t.Run("TestDraftNotAccepting", func(t *testing.T) {
		form := activeForm()
		form.Status = models.FormStatusDraft
		gateErr := CheckSubmittable(form, authedIdentity(), now)
		require.NotNil(t, gateErr)
		assert.Equal(t, "form_not_accepting", gateErr.Code)
	})

	t.Run("TestClosedBeatsAnonymityCheck", func(t *testing.T) {
		// status is checked before identity: a closed form rejects with
		// form_not_accepting even when anonymous submission would also fail
		form := activeForm()
		form.Status = models.FormStatusClosed
		form.Settings.AllowAnonymous = false
		gateErr := CheckSubmittable(form, models.SubmitterIdentity{}, now)
		require.NotNil(t, gateErr)
		assert.Equal(t, "form_not_accepting", gateErr.Code)
	})

	t.Run("TestDeadlinePassed", func(t *testing.T) {
		form := activeForm()
		closeAt := now.Add(-time.Hour)
		form.Settings.CloseAt = &closeAt
		gateErr := CheckSubmittable(form, authedIdentity(), now)
		require.NotNil(t, gateErr)
		assert.Equal(t, "deadline_passed", gateErr.Code)
	})

	t.Run("TestDeadlineExactInstantRejected", func(t *testing.T) {
		form := activeForm()
		closeAt := now
		form.Settings.CloseAt = &closeAt
		gateErr := CheckSubmittable(form, authedIdentity(), now)
		require.NotNil(t, gateErr)
		assert.Equal(t, "deadline_passed", gateErr.Code)
	})

	t.Run("TestDeadlineInFutureAccepted", func(t *testing.T) {
		form := activeForm()
		closeAt := now.Add(time.Hour)
		form.Settings.CloseAt = &closeAt
		assert.Nil(t, CheckSubmittable(form, authedIdentity(), now))
	})

	t.Run("TestQuotaExceeded", func(t *testing.T) {
		form := activeForm()
		form.Settings.MaxResponses = intPtr(100)
		form.ResponseCount = 100
		gateErr := CheckSubmittable(form, authedIdentity(), now)
		require.NotNil(t, gateErr)
		assert.Equal(t, "quota_exceeded", gateErr.Code)
	})

	t.Run("TestQuotaRemaining", func(t *testing.T) {
		form := activeForm()
		form.Settings.MaxResponses = intPtr(100)
		form.ResponseCount = 99
		assert.Nil(t, CheckSubmittable(form, authedIdentity(), now))
	})

	t.Run("TestNoQuotaMeansUnlimited", func(t *testing.T) {
		form := activeForm()
		form.ResponseCount = 1000000
		assert.Nil(t, CheckSubmittable(form, authedIdentity(), now))
	})

	t.Run("TestAnonymousRejectedWhenNotAllowed", func(t *testing.T) {
		form := activeForm()
		form.Settings.AllowAnonymous = false
		gateErr := CheckSubmittable(form, models.SubmitterIdentity{}, now)
		require.NotNil(t, gateErr)
		assert.Equal(t, "auth_required", gateErr.Code)
	})

	t.Run("TestAuthenticatedPassesIdentityCheck", func(t *testing.T) {
		form := activeForm()
		form.Settings.AllowAnonymous = false
		assert.Nil(t, CheckSubmittable(form, authedIdentity(), now))
	})

	t.Run("TestEmailOnlyIdentityIsAnonymous", func(t *testing.T) {
		form := activeForm()
		form.Settings.AllowAnonymous = false
		identity := models.SubmitterIdentity{Email: "guest@example.com"}
		gateErr := CheckSubmittable(form, identity, now)
		require.NotNil(t, gateErr)
		assert.Equal(t, "auth_required", gateErr.Code)
	})
}

func TestAcceptingResponses(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("TestMirrorsGateChecks", func(t *testing.T) {
		form := activeForm()
		assert.True(t, form.AcceptingResponses(now))

		form.Status = models.FormStatusArchived
		assert.False(t, form.AcceptingResponses(now))
	})

	t.Run("TestQuotaStopsAccepting", func(t *testing.T) {
		form := activeForm()
		form.Settings.MaxResponses = intPtr(1)
		form.ResponseCount = 1
		assert.False(t, form.AcceptingResponses(now))
	})
}
