package http

// ParseFilter is exported for testing
var ParseFilter = parseFilter

// ParseProfile is exported for testing
var ParseProfile = parseProfile
