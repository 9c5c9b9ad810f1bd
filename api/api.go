// Package api contains the value model and interfaces that are used throughout the configbyenv code base
package api

// OptionOverwrite is the policy option that makes the extension win every top-level conflict
const OptionOverwrite = `overwrite`

// OptionShallow is the policy option that requests a flat, non-recursive merge
const OptionShallow = `shallow`

// OptionCreateArray is the policy option that controls whether two conflicting scalars are
// combined into a sequence. It defaults to true.
const OptionCreateArray = `createArray`

// OptionSkipCommon is the selector option that excludes the common fragment
const OptionSkipCommon = `skipCommon`
