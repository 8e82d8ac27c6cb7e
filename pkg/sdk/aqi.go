package sdk

// AQICategory is a band of the air quality index scale.
type AQICategory struct {
	Level string
	Label string
	Color string
}

var aqiBands = []struct {
	max      float64
	category AQICategory
}{
	{50, AQICategory{Level: "good", Label: "Good", Color: "#10B981"}},
	{100, AQICategory{Level: "moderate", Label: "Moderate", Color: "#F59E0B"}},
	{150, AQICategory{Level: "unhealthy_sensitive", Label: "Unhealthy for Sensitive Groups", Color: "#F97316"}},
	{200, AQICategory{Level: "unhealthy", Label: "Unhealthy", Color: "#EF4444"}},
	{300, AQICategory{Level: "very_unhealthy", Label: "Very Unhealthy", Color: "#9333EA"}},
}

var aqiHazardous = AQICategory{Level: "hazardous", Label: "Hazardous", Color: "#7F1D1D"}

// ClassifyAQI maps an index value to its category. Band upper bounds are inclusive.
func ClassifyAQI(aqi float64) AQICategory {
	for _, band := range aqiBands {
		if aqi <= band.max {
			return band.category
		}
	}
	return aqiHazardous
}
