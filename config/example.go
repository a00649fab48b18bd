package config

// Example is a commented example config file, printed by --print-config.
const Example = `# Chyron configuration

# Path to feeds file (default: ~/.newsboat/urls or ~/.config/chyron/urls)
# feeds = "~/.config/chyron/urls"

# Delimiter between headlines
delimiter = " ••• "

# Scroll speed in characters per second
speed = 8

# Sort mode: random, by_source, by_date, by_date_asc
sort = "by_date"

# Pause mode: hover (pause on mouse hover), focus (pause when window focused), never
pause = "hover"

# Rotation mode: fair (show every headline once before repeats), continuous
rotation = "fair"

# Modifier key required for clicks to open links: none, ctrl, shift, alt
click_modifier = "none"

# Feed refresh interval in minutes
refresh_minutes = 5

# Maximum age of headlines in hours
max_age_hours = 24

# Maximum headlines per feed
max_per_feed = 10

# Maximum total headlines in rotation
max_total = 100

# Show source prefix on headlines [Source Name]
show_source = true

# Show status bar at bottom
status_bar = false

# Lua headline filter script (default: ~/.config/chyron/filter.lua if present)
# filter = "~/.config/chyron/filter.lua"
`
