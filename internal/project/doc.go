// Package project loads the logical app configuration of a project
// (app.yaml, app.yml, or app.json at the project root) and validates it
// against the embedded JSON schema. It does not know about native files or
// mods; callers turn an App into a mods.Config.
package project
