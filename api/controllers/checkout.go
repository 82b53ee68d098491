package controllers

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/handloomhouse/storefront-backend/api/responses"
	"github.com/handloomhouse/storefront-backend/api/validators"
	checkoutsvc "github.com/handloomhouse/storefront-backend/internal/checkout"
	pkgerrors "github.com/handloomhouse/storefront-backend/pkg/errors"
	"github.com/handloomhouse/storefront-backend/pkg/logger"
)

type applyCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

// draftView pairs the wizard draft with its derived cart summary so clients
// render both from one response.
type draftView struct {
	Draft   checkoutsvc.Draft `json:"draft"`
	Summary any               `json:"summary"`
}

func writeDraft(w http.ResponseWriter, r *http.Request, svc checkoutsvc.Service, logg *logger.Logger, draft checkoutsvc.Draft) {
	summary, err := svc.Summary(r.Context(), draft.ID)
	if err != nil {
		// the draft was just touched, so a summary failure is a storage problem
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	responses.WriteSuccess(w, draftView{Draft: draft, Summary: summary})
}

// StartCheckout opens a wizard draft for the current cart.
func StartCheckout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		draft, err := svc.Start(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		summary, err := svc.Summary(r.Context(), draft.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, draftView{Draft: draft, Summary: summary})
	}
}

// GetCheckout returns the draft and its summary.
func GetCheckout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		draft, err := svc.Get(r.Context(), chi.URLParam(r, "draftId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeDraft(w, r, svc, logg, draft)
	}
}

// SubmitCheckoutAddress submits the shipping form for the address step.
func SubmitCheckoutAddress(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var form checkoutsvc.ShippingForm
		if err := validators.DecodeJSON(r, &form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft, err := svc.SubmitAddress(r.Context(), chi.URLParam(r, "draftId"), form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeDraft(w, r, svc, logg, draft)
	}
}

// SubmitCheckoutPayment submits the payment form for the payment step.
func SubmitCheckoutPayment(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var form checkoutsvc.PaymentForm
		if err := validators.DecodeJSON(r, &form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft, err := svc.SubmitPayment(r.Context(), chi.URLParam(r, "draftId"), form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeDraft(w, r, svc, logg, draft)
	}
}

// CheckoutBack steps the wizard backwards.
func CheckoutBack(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		draft, err := svc.Back(r.Context(), chi.URLParam(r, "draftId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeDraft(w, r, svc, logg, draft)
	}
}

// ApplyCheckoutCoupon applies a coupon code to the draft.
func ApplyCheckoutCoupon(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload applyCouponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft, err := svc.ApplyCoupon(r.Context(), chi.URLParam(r, "draftId"), payload.Code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeDraft(w, r, svc, logg, draft)
	}
}

// RemoveCheckoutCoupon drops the applied coupon.
func RemoveCheckoutCoupon(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		draft, err := svc.RemoveCoupon(r.Context(), chi.URLParam(r, "draftId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeDraft(w, r, svc, logg, draft)
	}
}

// PlaceOrder finalizes the checkout from the review step.
func PlaceOrder(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		order, err := svc.Place(r.Context(), chi.URLParam(r, "draftId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
