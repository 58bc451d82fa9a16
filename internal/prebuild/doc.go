// Package prebuild knows the native files a project generates and the
// built-in mods derived from the app config. Run loads a project, registers
// caller plugins and built-ins against it, and evaluates every chain.
package prebuild
