/*
Package hotel_client is a client for the hotel management REST API.

It exposes the rooms, bookings and food orders collections. Every collection supports the same
contract: GET and POST on /api/<resource>, PUT and DELETE on /api/<resource>/<id>. Each request carries
an "Authorization: Bearer <token>" header taken from the configured CredentialProvider; any status
outside 2xx is returned as *core.ApiError and requests are never retried.

	rest, err := hotel_client.NewHotelRest(&hotel_client.Config{
		BaseURL:     "http://localhost:8080",
		Credentials: hotel_client.NewStaticCredentials(os.Getenv("HOTELIX_TOKEN")),
	})
	if err != nil {
		panic(err)
	}
	rooms, err := rest.Rooms.List()

The admin package builds the interactive screens on top of these resources.
*/
package hotel_client
