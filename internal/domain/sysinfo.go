package domain

// SystemInfo holds the environment data injected into prompts.
type SystemInfo struct {
	OS    string
	User  string
	Shell string
}
