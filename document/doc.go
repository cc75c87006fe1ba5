// Package document loads OpenAPI 3.x documents for API reference rendering.
//
// Documents are read from a file, URL, reader or byte slice, decoded with
// key order preserved, and dereferenced: every local "$ref" is replaced by
// its target, so the schemas handed to the example and proptree packages
// are plain trees. A schema that refers back to itself is expanded once:
// the inner reference becomes a placeholder carrying only the target's type,
// and the ref is listed in Document.CircularRefs. [WithStrictRefs] turns such
// cycles into an *oaserrors.ReferenceError with IsCircular set. External
// references are rejected.
//
// # Usage
//
//	doc, err := document.Load(
//	    document.WithFilePath("openapi.yaml"),
//	    document.WithLogger(document.NewSlogAdapter(slog.Default())),
//	)
//	if err != nil {
//	    return err
//	}
//	op, err := doc.Operation("/pets/{petId}", "GET")
//	if errors.Is(err, oaserrors.ErrOperationNotFound) {
//	    // no such operation
//	}
//
// # Schema decoding
//
// Besides the standard keywords the decoder understands "values" or
// "x-values" (display override for possible values) and "hidden" or
// "x-hidden" (prune from property trees). OAS 3.1 type arrays such as
// ["string", "null"] reduce to their first non-null type. "allOf" members
// are merged into the schema and "anyOf" is treated like "oneOf".
//
// # Resource limits
//
// [WithMaxRefDepth] bounds reference chains and [WithMaxFileSize] bounds
// the document size; exceeding either yields an *oaserrors.ResourceLimitError.
package document
