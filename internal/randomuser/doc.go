// Package randomuser is the HTTP client for the public random-user API.
//
// The client issues one GET per page, {base}/?page=N&results=M, with no
// authentication, no retries and no caching; the state coordinator owns retry
// and offline policy. Errors come in three shapes:
//
//   - "execute request: ..." for transport failures
//   - *HTTPError for non-2xx statuses, formatted "HTTP 404: Not Found"
//   - "decode response: ..." for malformed bodies
//
// The base URL keeps its path (the default is https://randomuser.me/api), and
// a missing scheme defaults to https.
package randomuser
