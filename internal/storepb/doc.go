// Package storepb holds the messages exchanged with the remote store service
// and the gRPC plumbing (service descriptor, client and server stubs, codec)
// used to carry them.
//
// The store speaks two closed sum types. An Action asks the device to do
// something (press a key, show a notification). An Event reports something
// that happened (the display was redrawn). Both are modelled as sealed
// interfaces and discriminated with a type switch:
//
//	switch a := action.(type) {
//	case *storepb.KeypadKeyPress:
//	case *storepb.NotificationsAdd:
//	}
//
// On the wire every sum type travels as an envelope with one optional field
// per variant, exactly one of which is set. The envelopes are encoded with
// deterministic CBOR and registered with gRPC under the "cbor" content
// subtype.
//
// This codec is not wire-compatible with a protobuf store server. The server
// end must register the same codec and envelopes; a stock protobuf server
// rejects calls made with the "cbor" content subtype.
package storepb
