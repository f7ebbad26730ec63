package errors

// Client-side error codes. These never collide with daemon codes, which the
// daemon defines inside its error envelope; daemon codes are carried through
// verbatim by DaemonError.
const (
	// Transport errors (transient, retried)
	CodeConnectionFailed int = -33001 // could not open a connection
	CodeConnectionLost   int = -33002 // peer closed or reset mid-request
	CodeWriteFailed      int = -33003 // write error on an open connection
	CodeReadTimeout      int = -33004 // read deadline exceeded
	CodeDecodeFailed     int = -33005 // undecodable response frame

	// Configuration / usage errors (fatal, never retried)
	CodeTransportUnavailable int = -33100 // no transport for this platform
	CodeInvalidConfig        int = -33101 // unusable configuration value
	CodeSchemaMismatch       int = -33102 // result did not match the method's schema
)
