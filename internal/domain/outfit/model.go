package outfit

// Image identifies the illustrative card image for an advice.
type Image string

const (
	ImageDefault     Image = "DEFAULT"
	ImageHot         Image = "HOT"
	ImageWarm        Image = "WARM"
	ImageCool        Image = "COOL"
	ImageChilly      Image = "CHILLY"
	ImageCold        Image = "COLD"
	ImageFreezing    Image = "FREEZING"
	ImageHeavyRain   Image = "HEAVY_RAIN"
	ImageRainy       Image = "RAINY"
	ImageLightRain   Image = "LIGHT_RAIN"
	ImageWindy       Image = "WINDY"
	ImageHighUVI     Image = "HIGH_UVI"
	ImageComfortable Image = "COMFORTABLE"
)

// Advice is the rule-derived clothing recommendation. Lines appear in fixed
// rule order (temperature, humidity, precipitation, wind, UV); exactly one
// image is selected per advice.
type Advice struct {
	Lines []string `json:"lines"`
	Image Image    `json:"image"`
}

func (i Image) isRain() bool {
	return i == ImageHeavyRain || i == ImageRainy || i == ImageLightRain
}

func (i Image) isCold() bool {
	return i == ImageChilly || i == ImageCold || i == ImageFreezing
}
