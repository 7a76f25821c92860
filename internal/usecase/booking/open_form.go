package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type OpenForm struct {
	forms domain.FormStore
	clock timezone.Clock
	audit *audit.Dispatcher
}

func NewOpenForm(
	forms domain.FormStore,
	clock timezone.Clock,
	audit *audit.Dispatcher,
) *OpenForm {
	return &OpenForm{
		forms: forms,
		clock: clock,
		audit: audit,
	}
}

func (uc *OpenForm) Execute(ctx context.Context) (*domain.Form, error) {
	form := domain.NewForm(uuid.NewString(), uc.clock.Now())

	if err := uc.forms.SaveForm(ctx, form); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		FormID: form.ID,
		Action: "form_opened",
		Entity: "form",
	})

	return form, nil
}

type GetForm struct {
	forms domain.FormStore
}

func NewGetForm(forms domain.FormStore) *GetForm {
	return &GetForm{forms: forms}
}

func (uc *GetForm) Execute(ctx context.Context, id string) (*domain.Form, error) {
	return uc.forms.GetForm(ctx, id)
}
