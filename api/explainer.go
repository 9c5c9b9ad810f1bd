package api

// An Explainer collects information about an environment selection and can present it in the form
// of a fairly verbose human readable explanation.
type Explainer interface {
	// AcceptSelector accepts information about where the environment selector string was found.
	// The source is the name of an environment variable or "default".
	AcceptSelector(source, selector string)

	// AcceptCommon accepts information about the common fragment
	AcceptCommon(found, skipped bool)

	// AcceptFragment accepts information that the fragment for the given environment name was
	// merged (found is true) or that no such fragment exists
	AcceptFragment(name string, found bool)

	// AcceptMergeResult accepts the final result of the selection
	AcceptMergeResult(result *Fragment)

	// String returns the explanation
	String() string
}
