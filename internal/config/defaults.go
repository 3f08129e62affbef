package config

var defaults = map[string]any{
	"secret": "",

	"token_mode":        TokenModeSingleUse,
	"token_default_ttl": 60,

	"log_level": "info",

	"session_ttl": 8, // 8 hours

	"base_url":        "/",
	"allowed_origins": "",

	"email.host":     "host.docker.internal",
	"email.port":     25,
	"email.username": "",
	"email.password": "",
	"email.from":     "noreply@chefpantry.example",
	"email.enabled":  false,

	"storage.type":       "sqlite",
	"storage.local.path": "./data/timeclock.db",
}

func Defaults() map[string]any {
	values := make(map[string]any)
	for k, v := range defaults {
		values[k] = v
	}
	return values
}
