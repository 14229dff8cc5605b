// Package domain holds the per-screen state types and the normalizers that
// turn loosely shaped API payloads into them.
//
// Vendor payloads are untrusted. Every element is either recognized, with
// its well-known fields lifted onto typed struct fields, or kept as an
// opaque bag that renders through the safe serializer.
package domain
