package imgfsd

import (
	"fmt"
	"io"
)

// statusText mirrors the small set of statuses this server ever emits
// (spec.md §4.F/§6): 200, 302, 500.
var statusText = map[int]string{
	200: "OK",
	302: "Found",
	500: "Internal Server Error",
}

// Response is what a Handler returns; the server loop serializes it
// exactly as spec.md §6 describes:
//
//	HTTP/1.1 <status> CRLF
//	<headers, each terminated by CRLF>
//	Content-Length: <n> CRLF
//	CRLF
//	<body of exactly n bytes>
type Response struct {
	Status  int
	Headers map[string]string
	Body    []byte
}

// errorResponse builds the standard 500 reply: body "Error: <msg>\n".
func errorResponse(msg string) Response {
	return Response{
		Status: 500,
		Body:   []byte(fmt.Sprintf("Error: %s\n", msg)),
	}
}

// redirectResponse builds a 302 reply pointing at location.
func redirectResponse(location string) Response {
	return Response{
		Status:  302,
		Headers: map[string]string{"Location": location},
	}
}

// okResponse builds a 200 reply with the given content type.
func okResponse(contentType string, body []byte) Response {
	return Response{
		Status:  200,
		Headers: map[string]string{"Content-Type": contentType},
		Body:    body,
	}
}

// writeResponse serializes r to w in the wire format spec.md §6 defines.
func writeResponse(w io.Writer, r Response) error {
	status := r.Status
	if status == 0 {
		status = 200
	}

	text, ok := statusText[status]
	if !ok {
		text = "Internal Server Error"
	}

	if _, err := fmt.Fprintf(w, "HTTP/1.1 %d %s\r\n", status, text); err != nil {
		return err
	}

	for k, v := range r.Headers {
		if _, err := fmt.Fprintf(w, "%s: %s\r\n", k, v); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(r.Body)); err != nil {
		return err
	}

	_, err := w.Write(r.Body)

	return err
}
