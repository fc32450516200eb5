package geo

// cityToGeoID maps team regions/cities to Data Commons GeoIDs (US Census
// FIPS place codes, geoId/{state_fips}{place_fips}). Canadian and other
// non-US cities map to "" — not covered by the US Census.
var cityToGeoID = map[string]string{
	"Arizona":         "geoId/0455000", // Phoenix, AZ
	"Atlanta":         "geoId/1304000",
	"Austin":          "geoId/4805000",
	"Baltimore":       "geoId/2404000",
	"Boston":          "geoId/2507000",
	"Buffalo":         "geoId/3611000",
	"Carolina":        "geoId/3712000", // Charlotte, NC
	"Charlotte":       "geoId/3712000",
	"Chicago":         "geoId/1714000",
	"Cincinnati":      "geoId/3915000",
	"Cleveland":       "geoId/3916000",
	"Columbus":        "geoId/3918000",
	"Dallas":          "geoId/4819000",
	"Denver":          "geoId/0820000",
	"Detroit":         "geoId/2622000",
	"Durham":          "geoId/3719000",
	"El Paso":         "geoId/4824000",
	"Green Bay":       "geoId/5531000",
	"Houston":         "geoId/4835000",
	"Indianapolis":    "geoId/1836003",
	"Jacksonville":    "geoId/1235000",
	"Kansas City":     "geoId/2938000",
	"Las Vegas":       "geoId/3240000",
	"Los Angeles":     "geoId/0644000",
	"Louisville":      "geoId/2148006",
	"Memphis":         "geoId/4748000",
	"Miami":           "geoId/1245000",
	"Milwaukee":       "geoId/5553000",
	"Minneapolis":     "geoId/2743000",
	"Minnesota":       "geoId/2743000", // state name -> Minneapolis
	"Nashville":       "geoId/4752006",
	"New England":     "geoId/2507000", // regional -> Boston
	"New Orleans":     "geoId/2255000",
	"New York":        "geoId/3651000",
	"Oakland":         "geoId/0653000",
	"Oklahoma City":   "geoId/4055000",
	"Omaha":           "geoId/3137000",
	"Orlando":         "geoId/1253000",
	"Philadelphia":    "geoId/4260000",
	"Phoenix":         "geoId/0455000",
	"Pittsburgh":      "geoId/4261000",
	"Portland":        "geoId/4159000",
	"Providence":      "geoId/4459000",
	"Raleigh":         "geoId/3755000",
	"Richmond":        "geoId/5167000",
	"Rochester":       "geoId/3663000",
	"Sacramento":      "geoId/0664000",
	"Salt Lake City":  "geoId/4967000",
	"San Antonio":     "geoId/4865000",
	"San Diego":       "geoId/0666000",
	"San Francisco":   "geoId/0667000",
	"San Jose":        "geoId/0668000",
	"Seattle":         "geoId/5363000",
	"St. Louis":       "geoId/2965000",
	"St. Paul":        "geoId/2758000",
	"St. Petersburg":  "geoId/1263000",
	"Syracuse":        "geoId/3673000",
	"Tampa":           "geoId/1271000",
	"Tampa Bay":       "geoId/1271000",
	"Tennessee":       "geoId/4752006", // state name -> Nashville
	"Toledo":          "geoId/3977000",
	"Tucson":          "geoId/0477000",
	"Tulsa":           "geoId/4075000",
	"Washington":      "geoId/1150000",
	"Washington D.C.": "geoId/1150000",
	"Wichita":         "geoId/2079000",
	"Worcester":       "geoId/2582000",

	// Canadian cities — known, but no US Census GeoID.
	"Calgary":  "",
	"Edmonton": "",
	"Montreal": "",
	"Ottawa":   "",
	"Toronto":  "",
	"Vancouver": "",
	"Winnipeg": "",
}

// cityAliases normalizes common region variations, including stadium towns
// that stand in for the market city.
var cityAliases = map[string]string{
	"D.C.":          "Washington D.C.",
	"DC":            "Washington D.C.",
	"LA":            "Los Angeles",
	"NYC":           "New York",
	"NOLA":          "New Orleans",
	"Philly":        "Philadelphia",
	"Bay Area":      "San Francisco",
	"Twin Cities":   "Minneapolis",
	"Foxborough":    "New England",
	"Foxboro":       "New England",
	"East Rutherford": "New York",
	"Glendale":      "Phoenix",      // Cardinals stadium
	"Inglewood":     "Los Angeles",  // SoFi Stadium
	"Landover":      "Washington",   // Commanders stadium
	"Orchard Park":  "Buffalo",      // Bills stadium
	"Santa Clara":   "San Francisco", // 49ers stadium
	"Bronx":         "New York",
	"Brooklyn":      "New York",
	"Queens":        "New York",
}

// canadianCities marks regions resolved to Canada for geo_country.
var canadianCities = map[string]bool{
	"Calgary":  true,
	"Edmonton": true,
	"Montreal": true,
	"Ottawa":   true,
	"Toronto":  true,
	"Vancouver": true,
	"Winnipeg": true,
}
