package classify

// Table classifies failures by looking up their service error code.
//
// A Table is not safe for concurrent mutation; build it up front with Set
// and treat it as read-only once handed to an engine.
type Table struct {
	codes map[string]Kind
}

// NewTable creates an empty code table.
func NewTable() *Table {
	return &Table{codes: make(map[string]Kind)}
}

// Default returns a table preloaded with a representative set of error codes
// used by large cloud providers. The mapping is intentionally extensible:
// services disagree on edge cases (resource propagation delays in
// particular), so callers remap codes with Set rather than rely on this
// table being exhaustive.
func Default() *Table {
	t := NewTable()

	// Rate limiting and quota exhaustion.
	for _, code := range []string{
		"Throttling",
		"ThrottlingException",
		"ThrottledException",
		"TooManyRequestsException",
		"RequestLimitExceeded",
		"RequestThrottled",
		"ProvisionedThroughputExceededException",
		"ServiceQuotaExceededException",
		"LimitExceededException",
		"SlowDown",
	} {
		t.Set(code, Throttling)
	}

	// Server-side failures expected to clear, including propagation delays.
	for _, code := range []string{
		"InternalError",
		"InternalFailure",
		"InternalServerError",
		"ServiceUnavailable",
		"ServiceUnavailableException",
		"ServiceFailure",
		"RequestTimeout",
		"RequestTimeoutException",
		"TransientFailure",
	} {
		t.Set(code, Transient)
	}

	// Missing targets.
	for _, code := range []string{
		"NotFound",
		"NotFoundException",
		"ResourceNotFoundException",
		"NoSuchEntity",
		"NoSuchKey",
		"NoSuchBucket",
	} {
		t.Set(code, NotFound)
	}

	// Conflicting concurrent state changes.
	for _, code := range []string{
		"Conflict",
		"ConflictException",
		"ResourceInUseException",
		"ResourceConflictException",
		"ResourceAlreadyExistsException",
		"EntityAlreadyExists",
		"ConcurrentModificationException",
		"OperationAbortedException",
	} {
		t.Set(code, ResourceConflict)
	}

	// Bad input.
	for _, code := range []string{
		"ValidationError",
		"ValidationException",
		"InvalidInput",
		"InvalidParameterValue",
		"InvalidParameterException",
		"InvalidParameterCombination",
		"InvalidRequestException",
		"MissingParameter",
		"MissingRequiredParameter",
		"MalformedQueryString",
	} {
		t.Set(code, InvalidInput)
	}

	// Authorization failures.
	for _, code := range []string{
		"AccessDenied",
		"AccessDeniedException",
		"UnauthorizedOperation",
		"UnauthorizedException",
		"AuthFailure",
		"UnrecognizedClientException",
		"InvalidClientTokenId",
		"ExpiredToken",
	} {
		t.Set(code, PermissionDenied)
	}

	return t
}

// Set maps an error code to a kind, overriding any previous mapping.
// It returns the table for chaining.
func (t *Table) Set(code string, kind Kind) *Table {
	t.codes[code] = kind
	return t
}

// Lookup returns the kind mapped to code, or Fatal if the code is unknown.
func (t *Table) Lookup(code string) Kind {
	if k, ok := t.codes[code]; ok {
		return k
	}
	return Fatal
}

// Classify extracts the service error code from the error chain and looks it
// up. Errors without a recognized code classify as Fatal.
func (t *Table) Classify(err error) Kind {
	if err == nil {
		return Fatal
	}
	code := Code(err)
	if code == "" {
		return Fatal
	}
	return t.Lookup(code)
}
