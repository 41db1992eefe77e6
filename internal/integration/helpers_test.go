package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"updatedAt": {},
	"reference": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, c := range cookies {
		req.AddCookie(&c)
	}

	return req, nil
}

func compareResponse(t testing.TB, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func (testApp *TestApp) do(t testing.TB, method, path string, body string, cookies []http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := prepareRequest(method, path, reader, nil, cookies)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	testApp.App.Routes().ServeHTTP(rec, req)

	return rec
}

func (testApp *TestApp) registerUser(t testing.TB, name, email string) {
	body := fmt.Sprintf(`{"name": %q, "email": %q, "password": %q}`, name, email, TestUserPassword)

	rec := testApp.do(t, http.MethodPost, "/auth/register", body, nil)
	require.Equal(t, http.StatusCreated, rec.Code, "failed to register user: %s", rec.Body.String())
}

func (testApp *TestApp) loginCookies(t testing.TB, email string) []http.Cookie {
	body := fmt.Sprintf(`{"email": %q, "password": %q}`, email, TestUserPassword)

	rec := testApp.do(t, http.MethodPost, "/auth/login", body, nil)
	require.Equal(t, http.StatusOK, rec.Code, "failed to login: %s", rec.Body.String())

	res := rec.Result()
	defer res.Body.Close()

	resCookies := res.Cookies()
	require.NotEmpty(t, resCookies, "expected a session cookie after login")

	cookies := make([]http.Cookie, 0, len(resCookies))
	for _, c := range resCookies {
		cookies = append(cookies, *c)
	}

	return cookies
}

func (testApp *TestApp) createTestListing(t testing.TB, hostCookies []http.Cookie) int {
	body := fmt.Sprintf(`{
		"title": %q,
		"description": %q,
		"nightlyPrice": %s,
		"address": %q,
		"city": %q,
		"country": %q,
		"imageUrls": [%q],
		"amenities": ["wifi", "kitchen"],
		"maxGuests": 4,
		"bedrooms": 2,
		"bathrooms": 1
	}`, TestListingTitle, TestListingDescription, TestListingPrice,
		TestListingAddress, TestListingCity, TestListingCountry, TestListingImageUrl)

	rec := testApp.do(t, http.MethodPost, "/listings", body, hostCookies)
	require.Equal(t, http.StatusCreated, rec.Code, "failed to create listing: %s", rec.Body.String())

	var created struct {
		Id int `json:"id"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	return created.Id
}

func bookingBody(listingId int, startDate, endDate string) string {
	return fmt.Sprintf(`{"listingId": %d, "startDate": %q, "endDate": %q}`, listingId, startDate, endDate)
}

func (testApp *TestApp) createTestBooking(t testing.TB, cookies []http.Cookie, listingId int, startDate, endDate string) int {
	rec := testApp.do(t, http.MethodPost, "/bookings", bookingBody(listingId, startDate, endDate), cookies)
	require.Equal(t, http.StatusCreated, rec.Code, "failed to create booking: %s", rec.Body.String())

	var created struct {
		Id int `json:"id"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	return created.Id
}

func (testApp *TestApp) countConfirmedBookings(t testing.TB, listingId int) int {
	var count int

	err := testApp.DB.QueryRow(context.Background(),
		"SELECT count(*) FROM bookings WHERE listing_id = $1 AND status = 'confirmed'",
		listingId).Scan(&count)
	require.NoError(t, err)

	return count
}

// marketplaceState is the fixture most booking scenarios start from: a host
// with one listing and a guest with no bookings.
type marketplaceState struct {
	GuestCookies []http.Cookie
	HostCookies  []http.Cookie
	ListingId    int
}

func (testApp *TestApp) seedMarketplace(t testing.TB) marketplaceState {
	testApp.registerUser(t, TestGuestName, TestGuestEmail)
	testApp.registerUser(t, TestHostName, TestHostEmail)

	hostCookies := testApp.loginCookies(t, TestHostEmail)
	guestCookies := testApp.loginCookies(t, TestGuestEmail)

	listingId := testApp.createTestListing(t, hostCookies)

	return marketplaceState{
		GuestCookies: guestCookies,
		HostCookies:  hostCookies,
		ListingId:    listingId,
	}
}
