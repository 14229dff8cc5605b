// Package api is the boundary to the Xyte fleet-management API.
//
// Screens never talk HTTP directly. They receive a Client and call one
// lightweight listing method per screen. Every failure surfaces as an error
// the connectivity package can classify: *APIError for HTTP level failures,
// the transport's own error otherwise.
package api
