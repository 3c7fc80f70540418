package handlers

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"authgate/internal/models"
	"authgate/internal/testutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestPOSTSignupHandler_MissingFields(t *testing.T) {
	tc := testutil.NewTestContextWithBody(t, http.MethodPost, "/api/auth/signup",
		strings.NewReader(`{"email":"steve@example.com"}`))
	defer tc.Finish()

	tc.CallHandler(POSTSignupHandler)

	tc.AssertStatus(t, http.StatusBadRequest)
	tc.AssertJSONField(t, "error", "Email and password are required")
}

func TestPOSTSignupHandler_ProviderRejection(t *testing.T) {
	tc := testutil.NewTestContextWithBody(t, http.MethodPost, "/api/auth/signup",
		strings.NewReader(`{"email":"steve@example.com","password":"hunter2","first_name":"Steve","last_name":"Example"}`))
	defer tc.Finish()

	tc.MockSessions.EXPECT().
		SignUp(gomock.Any(), "steve@example.com", "hunter2",
			models.ProfileFields{FirstName: "Steve", LastName: "Example"}, gomock.Any()).
		Return(errors.New("email already registered"))

	tc.CallHandler(POSTSignupHandler)

	tc.AssertStatus(t, http.StatusUnprocessableEntity)
	tc.AssertJSONField(t, "error", "An error occurred")
	assert.NotContains(t, tc.Response.Body.String(), "already registered")
}

func TestPOSTSignupHandler_Success(t *testing.T) {
	tc := testutil.NewTestContextWithBody(t, http.MethodPost, "/api/auth/signup",
		strings.NewReader(`{"email":"steve@example.com","password":"hunter2","first_name":"Steve","last_name":"Example"}`))
	defer tc.Finish()

	tc.MockSessions.EXPECT().
		SignUp(gomock.Any(), "steve@example.com", "hunter2",
			models.ProfileFields{FirstName: "Steve", LastName: "Example"}, gomock.Any()).
		Return(nil)

	tc.CallHandler(POSTSignupHandler)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertJSONField(t, "status", "ok")
	tc.AssertJSONField(t, "redirect", "/dashboard")
}
