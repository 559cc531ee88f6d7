package riot

import "fmt"

// regionalEndpoints maps platform regions to their API hosts.
var regionalEndpoints = map[string]string{
	"na1":  "https://na1.api.riotgames.com",
	"euw1": "https://euw1.api.riotgames.com",
	"eun1": "https://eun1.api.riotgames.com",
	"kr":   "https://kr.api.riotgames.com",
	"jp1":  "https://jp1.api.riotgames.com",
	"br1":  "https://br1.api.riotgames.com",
	"la1":  "https://la1.api.riotgames.com",
	"la2":  "https://la2.api.riotgames.com",
	"oc1":  "https://oc1.api.riotgames.com",
	"tr1":  "https://tr1.api.riotgames.com",
	"ru":   "https://ru.api.riotgames.com",
}

// continentalEndpoints maps continents to the hosts serving account and
// match data.
var continentalEndpoints = map[string]string{
	"americas": "https://americas.api.riotgames.com",
	"europe":   "https://europe.api.riotgames.com",
	"asia":     "https://asia.api.riotgames.com",
}

// regionToContinental routes a platform region to its continent.
var regionToContinental = map[string]string{
	"na1": "americas", "br1": "americas", "la1": "americas", "la2": "americas",
	"euw1": "europe", "eun1": "europe", "tr1": "europe", "ru": "europe",
	"kr": "asia", "jp1": "asia", "oc1": "asia",
}

// regionalBaseURL returns the platform host for a region.
func regionalBaseURL(region string) (string, error) {
	url, ok := regionalEndpoints[normalize(region)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedRegion, region)
	}
	return url, nil
}

// continentalBaseURL returns the continent host for a region.
func continentalBaseURL(region string) (string, error) {
	continent, ok := regionToContinental[normalize(region)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedRegion, region)
	}
	return continentalEndpoints[continent], nil
}

func normalize(region string) string {
	out := make([]byte, len(region))
	for i := 0; i < len(region); i++ {
		ch := region[i]
		if ch >= 'A' && ch <= 'Z' {
			ch += 'a' - 'A'
		}
		out[i] = ch
	}
	return string(out)
}
