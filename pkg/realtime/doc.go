// Package realtime implements the websocket client for the ThinkLens
// event stream.
//
// The client owns connection lifetime: once Connect succeeds, a lost
// connection is re-established with capped exponential backoff until
// Disconnect is called. Consumers only register callbacks; the notification
// center attaches the client as its inbound stream:
//
//	client := realtime.New(realtime.Config{
//	    URL: "wss://stream.thinklens.app/v1/events",
//	}, realtime.WithHeader(authHeader))
//
//	center.AttachStream(client)
//	if err := client.Connect(ctx); err != nil {
//	    // initial dial failed; the app can retry or stay offline
//	}
//	defer client.Disconnect()
//
// Message parsing is not this package's concern: callbacks receive raw
// bytes and the center does its own envelope dispatch.
package realtime
