package model

// SettingHorizonYears persists the server's countdown horizon.
const SettingHorizonYears = "horizon_years"
