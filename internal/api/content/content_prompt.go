package content

import "fmt"

// PlaceGuidePrompt asks for the long-form markdown guide shown on a place page.
func PlaceGuidePrompt(placeName, cityName string) string {
	return fmt.Sprintf(`Provide a detailed travel guide for "%[1]s" in "%[2]s", India.

Include:
1. A rich historical background.
2. Current entry fees and visiting hours.
3. Best ways to reach there (transportation).
4. Famous local foods or restaurants nearby.
5. 3-4 other famous places nearby.
6. Places to stay in "%[2]s" (budget, mid-range, luxury).

Format the response in clean Markdown.`, placeName, cityName)
}

func getCityHighlightsPrompt(cityName string) string {
	return fmt.Sprintf(`Provide a brief overview of %s, India, including:
- Famous foods
- Cultural vibe
- Travel atmosphere

Format the response in Markdown.`, cityName)
}

func getRestaurantsPrompt(cityName string) string {
	return fmt.Sprintf(`List %d famous restaurants in %s, India.

Return ONLY valid JSON in this exact format:

[
  {
    "name": "string",
    "address": "string",
    "contact": "string",
    "rating": number,
    "categories": ["string"],
    "menu": [
      {
        "name": "string",
        "price": "string",
        "description": "string",
        "category": "string"
      }
    ],
    "openingHours": "string",
    "description": "string"
  }
]`, recordsPerRequest, cityName)
}

func getHotelsPrompt(cityName string) string {
	return fmt.Sprintf(`List %d top-rated hotels in %s, India.

Return ONLY valid JSON in this exact format:

[
  {
    "name": "string",
    "starRating": number,
    "address": "string",
    "roomTypes": [
      {
        "name": "string",
        "price": "string",
        "description": "string",
        "amenities": ["string"],
        "status": "available or booked"
      }
    ],
    "amenities": ["string"]
  }
]`, recordsPerRequest, cityName)
}
