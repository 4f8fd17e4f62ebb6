// Package passwordreset drives the two-step OTP password reset:
// request a code for an email, then submit the code with a new password.
package passwordreset

import (
	"context"
	"errors"

	"marketadmin/internal/common"
)

// State of a reset flow
type State int

const (
	AwaitingEmail State = iota
	AwaitingOtpAndNewPassword
	Done
)

func (s State) String() string {
	switch s {
	case AwaitingEmail:
		return "awaiting_email"
	case AwaitingOtpAndNewPassword:
		return "awaiting_otp"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// API is the part of the admin API the flow calls
type API interface {
	SendResetOTP(ctx context.Context, email string) error
	VerifyResetOTP(ctx context.Context, email, otp, newPassword string) error
}

// ErrWrongState is returned when a step is submitted out of order
var ErrWrongState = errors.New("password reset step submitted out of order")

// EmailForm is the first step
type EmailForm struct {
	Email string `form:"email" validate:"required,contains=@"`
}

// ResetForm is the second step
type ResetForm struct {
	Email           string `form:"email" validate:"required,contains=@"`
	OTP             string `form:"otp" validate:"required"`
	NewPassword     string `form:"new_password" validate:"required"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=NewPassword"`
}

// Flow is one reset attempt. It holds no server-side state beyond the email,
// which pages carry in a hidden field.
type Flow struct {
	api   API
	state State
	email string
}

// New starts a flow at AwaitingEmail
func New(api API) *Flow {
	return &Flow{api: api, state: AwaitingEmail}
}

// Resume rebuilds a flow that already sent a code to email
func Resume(api API, email string) *Flow {
	if email == "" {
		return New(api)
	}
	return &Flow{api: api, state: AwaitingOtpAndNewPassword, email: email}
}

// State returns the current step
func (f *Flow) State() State { return f.state }

// Email returns the address the code was sent to
func (f *Flow) Email() string { return f.email }

// SubmitEmail validates the address and asks the API to send a code.
// Invalid input is rejected before any request; on API failure the flow stays put.
func (f *Flow) SubmitEmail(ctx context.Context, form EmailForm) error {
	if f.state == Done {
		return ErrWrongState
	}
	if err := common.Validate(form); err != nil {
		return err
	}
	if err := f.api.SendResetOTP(ctx, form.Email); err != nil {
		return err
	}
	f.email = form.Email
	f.state = AwaitingOtpAndNewPassword
	return nil
}

// SubmitReset validates the code and passwords and asks the API to apply them.
func (f *Flow) SubmitReset(ctx context.Context, form ResetForm) error {
	if f.state != AwaitingOtpAndNewPassword {
		return ErrWrongState
	}
	if form.Email == "" {
		form.Email = f.email
	}
	if err := common.Validate(form); err != nil {
		return err
	}
	if err := f.api.VerifyResetOTP(ctx, form.Email, form.OTP, form.NewPassword); err != nil {
		return err
	}
	f.state = Done
	return nil
}
