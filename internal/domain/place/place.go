// Package place owns city-name handling for the bot. Normalization happens
// exactly once here, at the system boundary: everything downstream (the CWA
// adapters in particular) assumes already-normalized names and never
// re-normalizes.
package place

import "strings"

// Normalize rewrites the common "台" spelling to the canonical "臺" form the
// CWA datasets use, e.g. "台中市" -> "臺中市".
func Normalize(city string) string {
	if city == "" {
		return city
	}
	return strings.ReplaceAll(strings.TrimSpace(city), "台", "臺")
}

// cities is the closed set of county-level place names the CWA forecast
// datasets carry, in canonical spelling.
var cities = []string{
	"基隆市", "臺北市", "新北市", "桃園市", "新竹市", "新竹縣", "苗栗縣",
	"臺中市", "彰化縣", "南投縣", "雲林縣", "嘉義市", "嘉義縣", "臺南市",
	"高雄市", "屏東縣", "宜蘭縣", "花蓮縣", "臺東縣", "澎湖縣", "金門縣",
	"連江縣",
}

var citySet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(cities))
	for _, c := range cities {
		set[c] = struct{}{}
	}
	return set
}()

// IsValid reports whether the (already normalized) name is a known city.
func IsValid(city string) bool {
	_, ok := citySet[city]
	return ok
}

// Cities returns the canonical city list in CWA order.
func Cities() []string {
	out := make([]string, len(cities))
	copy(out, cities)
	return out
}

// uvStations maps each city to the UV-monitoring station consulted for the
// O-A0005-001 dataset.
var uvStations = map[string]string{
	"基隆市": "466940",
	"臺北市": "466920",
	"新北市": "466880",
	"桃園市": "467050",
	"新竹市": "467571",
	"新竹縣": "467571",
	"苗栗縣": "467350",
	"臺中市": "467490",
	"彰化縣": "467270",
	"南投縣": "467650",
	"雲林縣": "467300",
	"嘉義市": "467480",
	"嘉義縣": "467480",
	"臺南市": "467410",
	"高雄市": "467440",
	"屏東縣": "467590",
	"宜蘭縣": "467080",
	"花蓮縣": "466990",
	"臺東縣": "467660",
	"澎湖縣": "467350",
	"金門縣": "467110",
	"連江縣": "467990",
}

// UVStationID resolves the UV station for a normalized city name.
func UVStationID(city string) (string, bool) {
	id, ok := uvStations[city]
	return id, ok
}

// obsStations maps each city to the staffed station whose current observation
// represents it in the O-A0003-001 dataset.
var obsStations = map[string]string{
	"基隆市": "基隆",
	"臺北市": "臺北",
	"新北市": "板橋",
	"桃園市": "新屋",
	"新竹市": "新竹",
	"新竹縣": "新竹",
	"苗栗縣": "後龍",
	"臺中市": "臺中",
	"彰化縣": "田中",
	"南投縣": "日月潭",
	"雲林縣": "古坑",
	"嘉義市": "嘉義",
	"嘉義縣": "阿里山",
	"臺南市": "臺南",
	"高雄市": "高雄",
	"屏東縣": "恆春",
	"宜蘭縣": "宜蘭",
	"花蓮縣": "花蓮",
	"臺東縣": "臺東",
	"澎湖縣": "澎湖",
	"金門縣": "金門",
	"連江縣": "馬祖",
}

// ObservationStation resolves the representative staffed weather station for
// a normalized city name.
func ObservationStation(city string) (string, bool) {
	name, ok := obsStations[city]
	return name, ok
}
