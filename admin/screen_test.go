package admin_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoteldesk/go-hotel-client/admin"
	"github.com/hoteldesk/go-hotel-client/core"
	"github.com/hoteldesk/go-hotel-client/resources/schemas"
)

func TestScreen_MountLoadsCollection(t *testing.T) {
	backend := newFakeBackend(t)
	backend.seed("rooms", room("r1", "101", "Single", 50, 2, "Available"))

	screen := admin.NewScreen(schemas.Rooms(), newRest(t, backend).Rooms, nil)
	assert.Equal(t, admin.StateIdle, screen.State())
	assert.Empty(t, screen.Rows())

	cmd := screen.Mount()
	require.NotNil(t, cmd)
	assert.Equal(t, admin.StateLoading, screen.State())

	run(screen, cmd)
	assert.Equal(t, admin.StateIdle, screen.State())
	assert.True(t, screen.Loaded())
	assert.Equal(t, []string{"101 / Single / $50 / 2 / Available"}, rowStrings(screen))

	seen := backend.seen()
	require.Len(t, seen, 1)
	assert.Equal(t, "GET /api/rooms", seen[0].String())
	assert.Equal(t, "Bearer test-token", seen[0].Auth)
}

func TestScreen_CreateRoom(t *testing.T) {
	backend := newFakeBackend(t)
	screen, notes := newRoomsScreen(t, backend)
	backend.resetSeen()

	require.True(t, screen.Add())
	assert.Equal(t, admin.StateFormOpenCreate, screen.State())
	fillRoom(screen.Form(), "101", "Single", "50", "2")

	cmd := screen.Submit()
	require.NotNil(t, cmd)
	assert.Equal(t, admin.StateSubmitting, screen.State())

	next := screen.Update(cmd())
	assert.Equal(t, admin.StateLoading, screen.State())
	assert.False(t, screen.Form().Open(), "form closes on success")
	assert.Nil(t, screen.Form().Draft(), "draft is discarded on success")
	run(screen, next)
	assert.Equal(t, admin.StateIdle, screen.State())

	seen := backend.seen()
	require.Len(t, seen, 2)
	assert.Equal(t, "POST /api/rooms", seen[0].String())
	assert.Equal(t, map[string]any{
		"roomNumber":   "101",
		"roomType":     "Single",
		"price":        float64(50),
		"maxOccupancy": float64(2),
		"status":       "Available",
	}, seen[0].Body)
	assert.Equal(t, "GET /api/rooms", seen[1].String())

	assert.Contains(t, rowStrings(screen), "101 / Single / $50 / 2 / Available")
	assert.Empty(t, notes.errors())
}

func TestScreen_DeleteRoom(t *testing.T) {
	backend := newFakeBackend(t)
	backend.seed("rooms",
		room("r1", "101", "Single", 50, 2, "Available"),
		room("r2", "102", "Double", 80, 3, "Occupied"),
	)
	screen, notes := newRoomsScreen(t, backend)
	backend.resetSeen()

	cmd := screen.Delete(0)
	require.NotNil(t, cmd)
	assert.True(t, screen.Deleting("r1"))
	run(screen, cmd)

	seen := backend.seen()
	require.Len(t, seen, 2)
	assert.Equal(t, "DELETE /api/rooms/r1", seen[0].String())
	assert.Equal(t, "GET /api/rooms", seen[1].String())

	_, found := screen.Records().Find("r1")
	assert.False(t, found)
	assert.Equal(t, []string{"102 / Double / $80 / 3 / Occupied"}, rowStrings(screen))
	assert.False(t, screen.Deleting("r1"))
	assert.Empty(t, notes.errors())
}

func TestScreen_UpdateFailureKeepsForm(t *testing.T) {
	backend := newFakeBackend(t)
	backend.seed("rooms", room("r1", "101", "Single", 50, 2, "Available"))
	screen, notes := newRoomsScreen(t, backend)
	backend.resetSeen()
	backend.fail(http.MethodPut, http.StatusInternalServerError, "boom")

	require.True(t, screen.Edit(0))
	screen.Form().SetText("price", "65")
	before := screen.Form().Draft()

	run(screen, screen.Submit())

	assert.Equal(t, admin.StateFormOpenEdit, screen.State())
	assert.True(t, screen.Form().Open())
	assert.Equal(t, before, screen.Form().Draft())
	require.Len(t, notes.errors(), 1)
	assert.Contains(t, notes.errors()[0].Message, "500")

	seen := backend.seen()
	require.Len(t, seen, 1, "no re-fetch after a failed update")
	assert.Equal(t, "PUT /api/rooms/r1", seen[0].String())
	assert.Equal(t, []string{"101 / Single / $50 / 2 / Available"}, rowStrings(screen))
}

func TestScreen_MissingRequiredFieldSendsNothing(t *testing.T) {
	backend := newFakeBackend(t)
	screen, notes := newRoomsScreen(t, backend)
	backend.resetSeen()

	require.True(t, screen.Add())
	fillRoom(screen.Form(), "", "Single", "50", "2")

	assert.Nil(t, screen.Submit())
	assert.Empty(t, backend.seen())
	assert.Equal(t, admin.StateFormOpenCreate, screen.State())
	assert.Contains(t, screen.Form().Errors()["roomNumber"], "Room number")
	require.Len(t, notes.all, 1)
	assert.Equal(t, admin.LevelWarn, notes.all[0].Level)
	assert.True(t, admin.IsValidationErr(notes.all[0].Err))
}

func TestScreen_InfinitePriceIsAValidationError(t *testing.T) {
	backend := newFakeBackend(t)
	screen, notes := newRoomsScreen(t, backend)
	backend.resetSeen()

	require.True(t, screen.Add())
	fillRoom(screen.Form(), "101", "Single", "Inf", "2")

	assert.Nil(t, screen.Submit())
	assert.Empty(t, backend.seen())
	assert.Equal(t, "Price must be a number", screen.Form().Errors()["price"])
	require.Len(t, notes.all, 1)
	assert.Equal(t, admin.LevelWarn, notes.all[0].Level)
	assert.True(t, admin.IsValidationErr(notes.all[0].Err))
}

func TestScreen_EditSeedsDraft(t *testing.T) {
	backend := newFakeBackend(t)
	record := room("r1", "101", "Suite", 120.5, 4, "Maintenance")
	record["description"] = "sea view"
	backend.seed("rooms", record)
	screen, _ := newRoomsScreen(t, backend)

	require.True(t, screen.Edit(0))
	assert.Equal(t, admin.StateFormOpenEdit, screen.State())
	assert.Equal(t, "r1", screen.Form().EditID())
	assert.Equal(t, admin.Draft(screen.Records()[0]), screen.Form().Draft())

	assert.False(t, screen.Edit(5), "edit is ignored while a form is open")
	assert.True(t, screen.Cancel())
	assert.False(t, screen.Edit(5), "out of range row")
}

func TestScreen_UnchangedUpdateIsInvisible(t *testing.T) {
	backend := newFakeBackend(t)
	backend.seed("rooms", room("r1", "101", "Single", 50, 2, "Available"))
	screen, _ := newRoomsScreen(t, backend)
	before := rowStrings(screen)

	require.True(t, screen.Edit(0))
	run(screen, screen.Submit())

	assert.Equal(t, admin.StateIdle, screen.State())
	assert.Equal(t, before, rowStrings(screen))
}

func TestScreen_SubmitGuard(t *testing.T) {
	backend := newFakeBackend(t)
	screen, _ := newRoomsScreen(t, backend)
	backend.resetSeen()

	require.True(t, screen.Add())
	fillRoom(screen.Form(), "201", "Double", "75", "2")
	first := screen.Submit()
	require.NotNil(t, first)
	assert.Nil(t, screen.Submit(), "second submit is ignored while the first is pending")
	assert.False(t, screen.Cancel(), "cancel is ignored while submitting")

	run(screen, first)
	posts := 0
	for _, r := range backend.seen() {
		if r.Method == http.MethodPost {
			posts++
		}
	}
	assert.Equal(t, 1, posts)
}

func TestScreen_DeleteGuardIsPerRow(t *testing.T) {
	backend := newFakeBackend(t)
	backend.seed("rooms",
		room("r1", "101", "Single", 50, 2, "Available"),
		room("r2", "102", "Double", 80, 3, "Available"),
	)
	screen, _ := newRoomsScreen(t, backend)

	first := screen.Delete(0)
	require.NotNil(t, first)
	assert.Nil(t, screen.Delete(0), "same row is guarded")
	other := screen.Delete(1)
	require.NotNil(t, other, "other rows are not blocked")

	run(screen, first)
	run(screen, other)
	assert.Empty(t, screen.Rows())
}

func TestScreen_DeleteFailureEntersError(t *testing.T) {
	backend := newFakeBackend(t)
	backend.seed("rooms", room("r1", "101", "Single", 50, 2, "Available"))
	screen, notes := newRoomsScreen(t, backend)
	backend.resetSeen()
	backend.fail(http.MethodDelete, http.StatusInternalServerError, `{"status":"error","message":"database locked"}`)

	cmd := screen.Delete(0)
	require.NotNil(t, cmd)
	hold := screen.Update(cmd())
	require.NotNil(t, hold)

	assert.Equal(t, admin.StateError, screen.State())
	require.Len(t, notes.errors(), 1)
	assert.Contains(t, notes.errors()[0].Message, "database locked")
	assert.Len(t, backend.seen(), 1, "no re-fetch after a failed delete")

	screen.Update(hold())
	assert.Equal(t, admin.StateIdle, screen.State())
	assert.Len(t, screen.Rows(), 1)
}

func TestScreen_UserActionLeavesError(t *testing.T) {
	backend := newFakeBackend(t)
	backend.seed("rooms", room("r1", "101", "Single", 50, 2, "Available"))
	screen, _ := newRoomsScreen(t, backend)
	backend.fail(http.MethodDelete, http.StatusBadGateway, "")

	hold := screen.Update(screen.Delete(0)())
	require.Equal(t, admin.StateError, screen.State())

	require.True(t, screen.Add())
	assert.Equal(t, admin.StateFormOpenCreate, screen.State())
	screen.Cancel()
	assert.Equal(t, admin.StateIdle, screen.State())

	// a stale hold expiry does not change anything anymore
	screen.Update(hold())
	assert.Equal(t, admin.StateIdle, screen.State())
}

func TestScreen_LoadFailureKeepsView(t *testing.T) {
	backend := newFakeBackend(t)
	backend.seed("rooms", room("r1", "101", "Single", 50, 2, "Available"))
	screen, notes := newRoomsScreen(t, backend)
	backend.fail(http.MethodGet, http.StatusServiceUnavailable, "")

	run(screen, screen.Refresh())

	assert.Equal(t, admin.StateIdle, screen.State())
	assert.Equal(t, []string{"101 / Single / $50 / 2 / Available"}, rowStrings(screen))
	require.Len(t, notes.errors(), 1)
	assert.Contains(t, notes.errors()[0].Message, "503")
}

func TestScreen_RefreshGuard(t *testing.T) {
	backend := newFakeBackend(t)
	screen, _ := newRoomsScreen(t, backend)

	first := screen.Refresh()
	require.NotNil(t, first)
	assert.Nil(t, screen.Refresh(), "refresh is ignored while a load is in flight")
	run(screen, first)
	assert.NotNil(t, screen.Refresh())
}

func TestScreen_AddAllowedWhileLoading(t *testing.T) {
	backend := newFakeBackend(t)
	backend.seed("rooms", room("r1", "101", "Single", 50, 2, "Available"))
	screen := admin.NewScreen(schemas.Rooms(), newRest(t, backend).Rooms, nil)

	load := screen.Mount()
	require.True(t, screen.Add())
	assert.Equal(t, admin.StateFormOpenCreate, screen.State())

	run(screen, load)
	assert.Equal(t, admin.StateFormOpenCreate, screen.State())
	assert.Len(t, screen.Rows(), 1)
}

func TestScreen_MutationDuringLoadTriggersReload(t *testing.T) {
	backend := newFakeBackend(t)
	screen, _ := newRoomsScreen(t, backend)

	load := screen.Refresh()
	require.NotNil(t, load)
	staleResult := load() // answered before the room exists

	require.True(t, screen.Add())
	fillRoom(screen.Form(), "301", "Deluxe", "300", "2")
	submit := screen.Submit()
	require.NotNil(t, submit)
	assert.Nil(t, screen.Update(submit()), "reload waits for the load in flight")

	reload := screen.Update(staleResult)
	require.NotNil(t, reload, "the outdated load is followed by a fresh one")
	run(screen, reload)
	assert.Equal(t, []string{"301 / Deluxe / $300 / 2 / Available"}, rowStrings(screen))
}

func TestScreen_UnmountDropsResults(t *testing.T) {
	backend := newFakeBackend(t)
	backend.seed("rooms", room("r1", "101", "Single", 50, 2, "Available"))
	notes := &notifications{}
	screen := admin.NewScreen(schemas.Rooms(), newRest(t, backend).Rooms, notes)

	load := screen.Mount()
	screen.Unmount()
	assert.False(t, screen.Active())
	assert.Nil(t, screen.Update(load()))
	assert.Empty(t, screen.Rows())

	backend.fail(http.MethodGet, http.StatusInternalServerError, "")
	load = screen.Mount()
	screen.Unmount()
	screen.Update(load())
	assert.Empty(t, notes.all, "nothing is reported after unmount")
}

func TestScreen_ResultsOfPreviousMountAreDropped(t *testing.T) {
	backend := newFakeBackend(t)
	backend.seed("rooms", room("r1", "101", "Single", 50, 2, "Available"))
	screen := admin.NewScreen(schemas.Rooms(), newRest(t, backend).Rooms, nil)

	oldLoad := screen.Mount()
	newLoad := screen.Mount()
	screen.Update(oldLoad())
	assert.False(t, screen.Loaded())
	assert.Equal(t, admin.StateLoading, screen.State())

	run(screen, newLoad)
	assert.True(t, screen.Loaded())
	assert.Equal(t, admin.StateIdle, screen.State())
}

func TestScreen_IgnoresOtherResources(t *testing.T) {
	backend := newFakeBackend(t)
	screen, _ := newRoomsScreen(t, backend)
	assert.Nil(t, screen.Update(admin.LoadedMsg{Resource: "bookings", Records: core.RecordSet{{"id": "b1"}}}))
	assert.Empty(t, screen.Rows())
}

func TestScreen_ServerFieldErrorsShownInForm(t *testing.T) {
	backend := newFakeBackend(t)
	screen, notes := newRoomsScreen(t, backend)
	backend.fail(http.MethodPost, http.StatusBadRequest,
		`{"status":"error","message":"validation failed","errors":{"roomNumber":"already exists","floor":"unknown"}}`)

	require.True(t, screen.Add())
	fillRoom(screen.Form(), "101", "Single", "50", "2")
	run(screen, screen.Submit())

	assert.Equal(t, admin.StateFormOpenCreate, screen.State())
	assert.Equal(t, "Room number: already exists", screen.Form().Errors()["roomNumber"])
	assert.NotContains(t, screen.Form().Errors(), "floor")
	require.Len(t, notes.errors(), 1)
	assert.Contains(t, notes.errors()[0].Message, "validation failed")

	backend.restore(http.MethodPost)
	screen.Form().SetText("roomNumber", "102")
	assert.Empty(t, screen.Form().Errors())
	run(screen, screen.Submit())
	assert.Equal(t, admin.StateIdle, screen.State())
}

func TestScreen_BookingsSchema(t *testing.T) {
	backend := newFakeBackend(t)
	notes := &notifications{}
	screen := admin.NewScreen(schemas.Bookings(), newRest(t, backend).Bookings, notes, admin.WithErrorHold(time.Millisecond))
	run(screen, screen.Mount())
	backend.resetSeen()

	require.True(t, screen.Add())
	form := screen.Form()
	form.SetText("guestName", "Ann Lee")
	form.SetText("roomNumber", "101")
	form.SetText("checkIn", "2026-03-05")
	form.SetText("checkOut", "2026-03-02")
	form.SetText("guests", "2")

	assert.Nil(t, screen.Submit())
	assert.Contains(t, form.Errors()["checkOut"], "after")

	form.SetText("checkOut", "2026-03-07")
	run(screen, screen.Submit())
	require.Len(t, backend.seen(), 2)
	assert.Equal(t, "Pending", backend.seen()[0].Body["status"])
	assert.Equal(t, []string{"Ann Lee / 101 / 2026-03-05 / 2026-03-07 / 2 / Pending"}, rowStrings(screen))
}
