package query

import (
	"net/url"
	"strconv"
)

const soldSearchBase = "https://www.ebay.com/sch/i.html"

// SoldSearchURL builds an eBay search URL restricted to completed, sold
// listings in the given category.
func SoldSearchURL(q string, categoryID int) string {
	qs := url.Values{}
	qs.Set("_nkw", q)
	qs.Set("_sacat", strconv.Itoa(categoryID))
	qs.Set("LH_Sold", "1")
	qs.Set("LH_Complete", "1")
	return soldSearchBase + "?" + qs.Encode()
}
