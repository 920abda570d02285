package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/venue-booking/internal/log"
	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/queue"
	"github.com/iliyamo/venue-booking/internal/repository"
)

func seatRequestEcho(store *mockRequests, notifier *mockNotifier) *SeatRequestHandler {
	return NewSeatRequestHandler(store, notifier, log.Discard())
}

func TestApprove_ConflictReturns409(t *testing.T) {
	store := &mockRequests{}
	notifier := &mockNotifier{}
	store.On("Approve", mock.Anything, uint64(8)).
		Return(nil, &repository.SeatConflictError{Seats: []string{"A-1-5"}})

	e := newEcho()
	h := seatRequestEcho(store, notifier)
	e.POST("/api/seat-requests/:id/approve", h.Approve)

	rec := request(e, http.MethodPost, "/api/seat-requests/8/approve", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, []any{"A-1-5"}, body["conflicts"])
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestApprove_SuccessNotifies(t *testing.T) {
	store := &mockRequests{}
	notifier := &mockNotifier{}
	approved := &model.SeatRequest{ID: 9, SelectedSeats: model.SeatList{"A-1-7"}, Status: model.RequestStatusApproved}
	store.On("Approve", mock.Anything, uint64(9)).
		Return(&repository.ApprovalResult{Request: approved, Applied: []string{"A-1-7"}}, nil)
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(ev queue.SeatRequestEvent) bool {
		return ev.Type == queue.EventApproved && ev.RequestID == 9
	})).Once()

	e := newEcho()
	h := seatRequestEcho(store, notifier)
	e.POST("/api/seat-requests/:id/approve", h.Approve)

	rec := request(e, http.MethodPost, "/api/seat-requests/9/approve", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "approved", body["seat_request"].(map[string]any)["status"])
	assert.Equal(t, []any{}, body["skipped_seats"])
	notifier.AssertExpectations(t)
}

func TestApprove_NotFound(t *testing.T) {
	store := &mockRequests{}
	store.On("Approve", mock.Anything, uint64(4)).Return(nil, repository.ErrNotFound)

	e := newEcho()
	e.POST("/api/seat-requests/:id/approve", seatRequestEcho(store, &mockNotifier{}).Approve)

	rec := request(e, http.MethodPost, "/api/seat-requests/4/approve", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, decode(t, rec)["success"])
}

func TestApprove_DatabaseErrorIsGeneric(t *testing.T) {
	store := &mockRequests{}
	store.On("Approve", mock.Anything, uint64(4)).Return(nil, assert.AnError)

	e := newEcho()
	e.POST("/api/seat-requests/:id/approve", seatRequestEcho(store, &mockNotifier{}).Approve)

	rec := request(e, http.MethodPost, "/api/seat-requests/4/approve", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestDeny(t *testing.T) {
	store := &mockRequests{}
	notifier := &mockNotifier{}
	store.On("Deny", mock.Anything, uint64(5)).Return(&model.SeatRequest{ID: 5, Status: model.RequestStatusDenied}, nil)
	notifier.On("Notify", mock.Anything, mock.Anything).Once()

	e := newEcho()
	e.POST("/api/seat-requests/:id/deny", seatRequestEcho(store, notifier).Deny)

	rec := request(e, http.MethodPost, "/api/seat-requests/5/deny", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "denied", decode(t, rec)["seat_request"].(map[string]any)["status"])
	store.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything)
	notifier.AssertExpectations(t)
}

func TestCreateSeatRequest(t *testing.T) {
	store := &mockRequests{}
	notifier := &mockNotifier{}
	store.On("Create", mock.Anything, mock.MatchedBy(func(r *model.SeatRequest) bool {
		return r.CustomerEmail == "dana@example.com" && len(r.SelectedSeats) == 2 && r.TotalSeats == 2
	})).Run(func(args mock.Arguments) {
		r := args.Get(1).(*model.SeatRequest)
		r.ID = 11
		r.Status = model.RequestStatusPending
	}).Return(nil)
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(ev queue.SeatRequestEvent) bool {
		return ev.Type == queue.EventSubmitted && ev.RequestID == 11
	})).Once()

	e := newEcho()
	e.POST("/api/seat-requests", seatRequestEcho(store, notifier).Create)

	rec := request(e, http.MethodPost, "/api/seat-requests",
		`{"customer_name":"Dana","customer_email":"Dana@Example.com","selected_seats":["A-1-5"," A-1-6","A-1-5"]}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "pending", decode(t, rec)["seat_request"].(map[string]any)["status"])
	notifier.AssertExpectations(t)
}

func TestCreateSeatRequest_Validation(t *testing.T) {
	cases := map[string]string{
		"missing seats":  `{"customer_name":"Dana","customer_email":"dana@example.com","selected_seats":[]}`,
		"bad seat":       `{"customer_name":"Dana","customer_email":"dana@example.com","selected_seats":["A5"]}`,
		"bad email":      `{"customer_name":"Dana","customer_email":"nope","selected_seats":["A-1-5"]}`,
		"missing name":   `{"customer_email":"dana@example.com","selected_seats":["A-1-5"]}`,
		"malformed json": `{"customer_name":`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			store := &mockRequests{}
			e := newEcho()
			e.POST("/api/seat-requests", seatRequestEcho(store, &mockNotifier{}).Create)

			rec := request(e, http.MethodPost, "/api/seat-requests", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, false, decode(t, rec)["success"])
			store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateSeatRequest_RejectsApprovedStatus(t *testing.T) {
	store := &mockRequests{}
	e := newEcho()
	e.PUT("/api/seat-requests/:id", seatRequestEcho(store, &mockNotifier{}).Update)

	rec := request(e, http.MethodPut, "/api/seat-requests/3", `{"status":"approved"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestListSeatRequests_Filters(t *testing.T) {
	store := &mockRequests{}
	eventID := uint64(3)
	store.On("List", mock.Anything, model.SeatRequestFilter{Status: "pending", EventID: &eventID}).
		Return([]model.SeatRequest{{ID: 1, Status: "pending"}}, nil)

	e := newEcho()
	e.GET("/api/seat-requests", seatRequestEcho(store, &mockNotifier{}).List)

	rec := request(e, http.MethodGet, "/api/seat-requests?status=pending&event_id=3", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["seat_requests"], 1)

	rec = request(e, http.MethodGet, "/api/seat-requests?status=bogus", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
