package config

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/vozdalei",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		API: APIConfig{
			BaseURL:        DefaultAPIBaseURL,
			TimeoutSeconds: 60,
		},
		Speech: SpeechConfig{
			Enabled: true,
			Lang:    "pt-BR",
			Rate:    0.9,
		},
	}
}

func GenerateSystemConfigTemplate() string {
	return `# Voz da Lei System Configuration
# Location: ~/.config/vozdalei/settings.toml
# This file uses TOML format: https://toml.io

# Directory where user config, keybindings and exports are stored
data_directory = "~/.local/share/vozdalei"
`
}

func GenerateUserConfigTemplate() string {
	return `# Voz da Lei User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

[api]
# Backend base URL (VOZDALEI_API_URL or NEXT_PUBLIC_API_URL override this)
base_url = "http://localhost:8000"

# Per-request timeout in seconds
timeout_seconds = 60

[speech]
# Read answers aloud with a local text-to-speech program
enabled = true

# Program to use: "espeak-ng", "espeak" or "say". Empty picks the first one found.
engine = ""

# Voice language and speaking rate (1.0 = normal)
lang = "pt-BR"
rate = 0.9
`
}

func GenerateKeybindingsTemplate() string {
	return `# Voz da Lei Keybindings Configuration
# Location: <data_directory>/keybindings.toml
# This file uses TOML format: https://toml.io

# Every action uses one of the two modifiers below. Change them to avoid
# conflicts with your window manager or terminal multiplexer.
[modifiers]
primary = "alt"          # alt, ctrl, meta or super
secondary = "alt+shift"

# For tmux users (Alt may conflict):
#   primary = "ctrl"
#   secondary = "ctrl+shift"
#   (then move yank_conversation off Ctrl+C, for example to "f6")

# Per-action overrides. Enter, Alt+Enter, Ctrl+C and Esc belong to the
# inputs and cannot be assigned to an action.
[actions]
# Open the suggestions picker with F5:
#   suggestions = "f5"
#
# Switch views with function keys:
#   view_chat = "f1"
#   view_simplify = "f2"
#   view_publications = "f3"
#
# Read aloud with Ctrl+R:
#   speak = "ctrl+r"
`
}
