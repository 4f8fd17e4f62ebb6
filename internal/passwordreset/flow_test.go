package passwordreset

import (
	"context"
	"errors"
	"testing"

	"marketadmin/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) SendResetOTP(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAPI) VerifyResetOTP(ctx context.Context, email, otp, newPassword string) error {
	args := m.Called(ctx, email, otp, newPassword)
	return args.Error(0)
}

func TestSubmitEmail_InvalidEmailSendsNothing(t *testing.T) {
	for _, email := range []string{"", "root.example.com"} {
		api := &MockAPI{}
		flow := New(api)

		err := flow.SubmitEmail(context.Background(), EmailForm{Email: email})
		require.Error(t, err)
		assert.True(t, common.IsValidationError(err))
		assert.Equal(t, AwaitingEmail, flow.State())
		api.AssertNotCalled(t, "SendResetOTP", mock.Anything, mock.Anything)
	}
}

func TestSubmitEmail_Success(t *testing.T) {
	api := &MockAPI{}
	api.On("SendResetOTP", mock.Anything, "root@example.com").Return(nil)

	flow := New(api)
	require.NoError(t, flow.SubmitEmail(context.Background(), EmailForm{Email: "root@example.com"}))
	assert.Equal(t, AwaitingOtpAndNewPassword, flow.State())
	assert.Equal(t, "root@example.com", flow.Email())
	api.AssertExpectations(t)
}

func TestSubmitEmail_APIFailureStays(t *testing.T) {
	api := &MockAPI{}
	api.On("SendResetOTP", mock.Anything, "root@example.com").Return(errors.New("no such admin"))

	flow := New(api)
	err := flow.SubmitEmail(context.Background(), EmailForm{Email: "root@example.com"})
	assert.EqualError(t, err, "no such admin")
	assert.Equal(t, AwaitingEmail, flow.State())
}

func TestSubmitReset_MismatchedPasswordsSendNothing(t *testing.T) {
	api := &MockAPI{}
	flow := Resume(api, "root@example.com")

	err := flow.SubmitReset(context.Background(), ResetForm{
		OTP:             "123456",
		NewPassword:     "hunter22",
		ConfirmPassword: "hunter23",
	})
	require.Error(t, err)
	assert.Equal(t, "Passwords do not match", common.ValidationMessage(err))
	assert.Equal(t, AwaitingOtpAndNewPassword, flow.State())
	api.AssertNotCalled(t, "VerifyResetOTP", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitReset_MissingOTPSendsNothing(t *testing.T) {
	api := &MockAPI{}
	flow := Resume(api, "root@example.com")

	err := flow.SubmitReset(context.Background(), ResetForm{NewPassword: "a", ConfirmPassword: "a"})
	assert.Equal(t, "OTP is required", common.ValidationMessage(err))
	api.AssertNotCalled(t, "VerifyResetOTP", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitReset_Success(t *testing.T) {
	api := &MockAPI{}
	api.On("VerifyResetOTP", mock.Anything, "root@example.com", "123456", "hunter22").Return(nil)

	flow := Resume(api, "root@example.com")
	require.NoError(t, flow.SubmitReset(context.Background(), ResetForm{
		OTP:             "123456",
		NewPassword:     "hunter22",
		ConfirmPassword: "hunter22",
	}))
	assert.Equal(t, Done, flow.State())
	api.AssertExpectations(t)

	assert.ErrorIs(t, flow.SubmitReset(context.Background(), ResetForm{}), ErrWrongState)
	assert.ErrorIs(t, flow.SubmitEmail(context.Background(), EmailForm{Email: "a@b"}), ErrWrongState)
}

func TestSubmitReset_APIFailureStays(t *testing.T) {
	api := &MockAPI{}
	api.On("VerifyResetOTP", mock.Anything, "root@example.com", "000000", "pw").Return(errors.New("invalid otp"))

	flow := Resume(api, "root@example.com")
	err := flow.SubmitReset(context.Background(), ResetForm{OTP: "000000", NewPassword: "pw", ConfirmPassword: "pw"})
	assert.EqualError(t, err, "invalid otp")
	assert.Equal(t, AwaitingOtpAndNewPassword, flow.State())
}

func TestSubmitReset_BeforeEmail(t *testing.T) {
	flow := Resume(&MockAPI{}, "")
	assert.Equal(t, AwaitingEmail, flow.State())
	assert.ErrorIs(t, flow.SubmitReset(context.Background(), ResetForm{}), ErrWrongState)
}
