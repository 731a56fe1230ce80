// Package middleware groups the Fiber middleware mounted by the start command.
//
//   - rayid: tags each request with an X-Ray-ID, reusing the caller's value
//     when present, so request logs and feature logs can be joined.
//   - auth: requires the server API key in X-API-Key or a Bearer header.
//     It passes everything through when no key is configured.
//
// rayid runs first. The swagger UI is mounted before auth and stays public.
package middleware
