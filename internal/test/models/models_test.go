package models_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/models"
)

func TestOrderStatusTerminal(t *testing.T) {
	for _, status := range models.AllStatuses() {
		terminal := status == models.StatusDelivered || status == models.StatusCancelled
		assert.Equal(t, terminal, status.Terminal(), "status %s", status)
	}
}

func TestCurrencyFor(t *testing.T) {
	assert.Equal(t, "EGP", models.CurrencyFor(models.DomesticCountry))
	assert.Equal(t, "LYD", models.CurrencyFor("ليبيا"))
	assert.Equal(t, "LYD", models.CurrencyFor(""))
}

func TestPaymentValidate(t *testing.T) {
	userID := uuid.New()
	printerID := uuid.New()

	valid := models.Payment{ID: uuid.New(), UserID: &userID, Amount: 10}
	assert.NoError(t, valid.Validate())

	both := models.Payment{ID: uuid.New(), UserID: &userID, PrinterID: &printerID, Amount: 10}
	var validation *models.ValidationError
	require.ErrorAs(t, both.Validate(), &validation)

	neither := models.Payment{ID: uuid.New(), Amount: 10}
	require.ErrorAs(t, neither.Validate(), &validation)

	free := models.Payment{ID: uuid.New(), PrinterID: &printerID, Amount: 0}
	require.ErrorAs(t, free.Validate(), &validation)
}

func TestOrderClone_IsDeep(t *testing.T) {
	designerID := uuid.New()
	order := &models.Order{
		ID:                 uuid.New(),
		Status:             models.StatusDesigning,
		ReferenceImages:    []models.FileRef{{Name: "ref.png", URL: "u"}},
		AssignedToDesigner: &designerID,
		ActivityLog:        []models.ActivityLogEntry{{Action: "Created Order"}},
	}

	clone := order.Clone()
	clone.Status = models.StatusPrinting
	clone.ReferenceImages[0].Name = "changed.png"
	clone.ActivityLog = append(clone.ActivityLog, models.ActivityLogEntry{Action: "next"})
	*clone.AssignedToDesigner = uuid.New()

	assert.Equal(t, models.StatusDesigning, order.Status)
	assert.Equal(t, "ref.png", order.ReferenceImages[0].Name)
	assert.Len(t, order.ActivityLog, 1)
	assert.Equal(t, designerID, *order.AssignedToDesigner)
}

func TestCustomerValidate(t *testing.T) {
	customer := models.Customer{Name: "Aya", Address: "14 Garden St", Country: "ليبيا", Phone: "0123"}
	assert.NoError(t, customer.Validate())

	missingPhone := customer
	missingPhone.Phone = ""
	var validation *models.ValidationError
	require.ErrorAs(t, missingPhone.Validate(), &validation)
	assert.Equal(t, "customer.phone", validation.Field)
}

func TestStoryValidate(t *testing.T) {
	story := models.StoryDetails{Details: "a story", Type: "Adventure", Copies: 1}
	assert.NoError(t, story.Validate())

	noCopies := story
	noCopies.Copies = 0
	var validation *models.ValidationError
	require.ErrorAs(t, noCopies.Validate(), &validation)
}

func TestFileUploadEmpty(t *testing.T) {
	assert.True(t, models.FileUpload{}.Empty())
	assert.True(t, models.FileUpload{Name: "a.png"}.Empty())
	assert.True(t, models.FileUpload{Data: []byte{1}}.Empty())
	assert.False(t, models.FileUpload{Name: "a.png", Data: []byte{1}}.Empty())
}
