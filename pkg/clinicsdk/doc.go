/*
Package clinicsdk is the Go client for the clinic records service and the home
of its wire types.

# Client vs Session

  - Client: unauthenticated operations (health, register, login)
  - Session: operations carrying a bearer token

	client := clinicsdk.NewClient("http://localhost:8080")

	session, err := client.Authenticate(ctx, clinicsdk.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		return err
	}

	clinic, err := session.CreateClinic(ctx, clinicsdk.CreateClinicRequest{Name: "Harbour Clinic"})

Tokens live for 24 hours and there is no refresh flow; authenticate again once
a Session starts returning 403.

# Errors

Every non-success response is returned as *APIError carrying the HTTP status
and the server's message:

	_, err := session.GetPatient(ctx, id)
	if clinicsdk.IsStatus(err, http.StatusNotFound) {
		// not in this clinic
	}

The request types double as the server's validation schemas through their
`validate` tags.
*/
package clinicsdk
