package fetch

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const waybackAPI = "https://archive.org/wayback/available"

// waybackResponse is the subset of the availability API we use.
type waybackResponse struct {
	ArchivedSnapshots struct {
		Closest struct {
			Available bool   `json:"available"`
			URL       string `json:"url"`
			Status    string `json:"status"`
		} `json:"closest"`
	} `json:"archived_snapshots"`
}

// waybackSnapshot asks the wayback availability API for the closest archived
// copy of the primary URL. A miss or API failure is not an error, just no
// extra candidate.
func waybackSnapshot(candidateURLs []string, debug bool) (string, bool) {
	if len(candidateURLs) == 0 {
		return "", false
	}
	primary := candidateURLs[0]

	client := resty.New().SetTimeout(15 * time.Second)
	var out waybackResponse
	resp, err := client.R().
		SetQueryParam("url", primary).
		SetResult(&out).
		Get(waybackAPI)
	if err != nil || !resp.IsSuccess() {
		if debug {
			fmt.Printf("  wayback lookup failed for %s\n", primary)
		}
		return "", false
	}

	closest := out.ArchivedSnapshots.Closest
	if !closest.Available || closest.URL == "" {
		return "", false
	}
	if debug {
		fmt.Printf("  wayback snapshot: %s (status %s)\n", closest.URL, closest.Status)
	}
	return closest.URL, true
}
