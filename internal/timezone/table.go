package timezone

// entry maps a lowercase place name or alias to an IANA zone id.
type entry struct {
	place string
	zone  string
}

// placeTable is consulted in insertion order: an exact match wins, then
// the first substring containment. Overlapping substrings are not
// deduplicated, so order matters (e.g. "angeles" resolves through the
// "los angeles" entry because it appears first).
var placeTable = []entry{
	{"new york", "America/New_York"},
	{"nyc", "America/New_York"},
	{"los angeles", "America/Los_Angeles"},
	{"la", "America/Los_Angeles"},
	{"san francisco", "America/Los_Angeles"},
	{"sf", "America/Los_Angeles"},
	{"chicago", "America/Chicago"},
	{"houston", "America/Chicago"},
	{"denver", "America/Denver"},
	{"phoenix", "America/Phoenix"},
	{"seattle", "America/Los_Angeles"},
	{"boston", "America/New_York"},
	{"miami", "America/New_York"},
	{"washington", "America/New_York"},
	{"dc", "America/New_York"},
	{"toronto", "America/Toronto"},
	{"vancouver", "America/Vancouver"},
	{"mexico city", "America/Mexico_City"},
	{"sao paulo", "America/Sao_Paulo"},
	{"buenos aires", "America/Argentina/Buenos_Aires"},
	{"london", "Europe/London"},
	{"uk", "Europe/London"},
	{"dublin", "Europe/Dublin"},
	{"paris", "Europe/Paris"},
	{"france", "Europe/Paris"},
	{"berlin", "Europe/Berlin"},
	{"germany", "Europe/Berlin"},
	{"munich", "Europe/Berlin"},
	{"frankfurt", "Europe/Berlin"},
	{"madrid", "Europe/Madrid"},
	{"spain", "Europe/Madrid"},
	{"rome", "Europe/Rome"},
	{"italy", "Europe/Rome"},
	{"amsterdam", "Europe/Amsterdam"},
	{"brussels", "Europe/Brussels"},
	{"zurich", "Europe/Zurich"},
	{"geneva", "Europe/Zurich"},
	{"vienna", "Europe/Vienna"},
	{"stockholm", "Europe/Stockholm"},
	{"oslo", "Europe/Oslo"},
	{"copenhagen", "Europe/Copenhagen"},
	{"helsinki", "Europe/Helsinki"},
	{"warsaw", "Europe/Warsaw"},
	{"prague", "Europe/Prague"},
	{"lisbon", "Europe/Lisbon"},
	{"athens", "Europe/Athens"},
	{"istanbul", "Europe/Istanbul"},
	{"moscow", "Europe/Moscow"},
	{"dubai", "Asia/Dubai"},
	{"uae", "Asia/Dubai"},
	{"abu dhabi", "Asia/Dubai"},
	{"riyadh", "Asia/Riyadh"},
	{"tel aviv", "Asia/Jerusalem"},
	{"jerusalem", "Asia/Jerusalem"},
	{"cairo", "Africa/Cairo"},
	{"egypt", "Africa/Cairo"},
	{"lagos", "Africa/Lagos"},
	{"nairobi", "Africa/Nairobi"},
	{"johannesburg", "Africa/Johannesburg"},
	{"cape town", "Africa/Johannesburg"},
	{"mumbai", "Asia/Kolkata"},
	{"delhi", "Asia/Kolkata"},
	{"new delhi", "Asia/Kolkata"},
	{"bangalore", "Asia/Kolkata"},
	{"india", "Asia/Kolkata"},
	{"karachi", "Asia/Karachi"},
	{"dhaka", "Asia/Dhaka"},
	{"bangkok", "Asia/Bangkok"},
	{"thailand", "Asia/Bangkok"},
	{"jakarta", "Asia/Jakarta"},
	{"singapore", "Asia/Singapore"},
	{"kuala lumpur", "Asia/Kuala_Lumpur"},
	{"hong kong", "Asia/Hong_Kong"},
	{"hk", "Asia/Hong_Kong"},
	{"shanghai", "Asia/Shanghai"},
	{"beijing", "Asia/Shanghai"},
	{"china", "Asia/Shanghai"},
	{"taipei", "Asia/Taipei"},
	{"seoul", "Asia/Seoul"},
	{"korea", "Asia/Seoul"},
	{"tokyo", "Asia/Tokyo"},
	{"osaka", "Asia/Tokyo"},
	{"japan", "Asia/Tokyo"},
	{"manila", "Asia/Manila"},
	{"sydney", "Australia/Sydney"},
	{"melbourne", "Australia/Melbourne"},
	{"brisbane", "Australia/Brisbane"},
	{"perth", "Australia/Perth"},
	{"australia", "Australia/Sydney"},
	{"auckland", "Pacific/Auckland"},
	{"new zealand", "Pacific/Auckland"},
	{"wellington", "Pacific/Auckland"},
	{"honolulu", "Pacific/Honolulu"},
	{"hawaii", "Pacific/Honolulu"},
	{"anchorage", "America/Anchorage"},
	{"alaska", "America/Anchorage"},
	{"utc", "Etc/UTC"},
	{"gmt", "Etc/UTC"},
}
