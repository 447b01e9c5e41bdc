// Package feature implements the unstable-feature gate.
//
// Operations on unstable surfaces run a preflight Check and abort with a
// FeatureDisabled error when the feature is off. Gates are populated
// programmatically or from a TOML config file listing enabled features.
package feature
