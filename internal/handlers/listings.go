package handlers

import (
	"strconv"

	"github.com/brianmwangi/estatelink-backend/internal/listings"
	"github.com/brianmwangi/estatelink-backend/internal/models"
	"github.com/brianmwangi/estatelink-backend/internal/services"
	"github.com/brianmwangi/estatelink-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CreateListing handles a vendor submitting a new property listing.
// Submissions start in pending moderation and are invisible in search until
// an admin approves them.
func CreateListing(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorId := c.GetUint("userId")

		var input struct {
			Title         string  `form:"title" binding:"required"`
			Description   string  `form:"description"`
			Price         float64 `form:"price" binding:"required,gte=0"`
			Bedrooms      int     `form:"bedrooms" binding:"gte=0"`
			Bathrooms     int     `form:"bathrooms" binding:"gte=0"`
			Area          float64 `form:"area" binding:"gte=0"`
			City          string  `form:"city" binding:"required"`
			Neighborhood  string  `form:"neighborhood"`
			Latitude      float64 `form:"latitude"`
			Longitude     float64 `form:"longitude"`
			PropertyType  string  `form:"propertyType" binding:"required"`
			ListingStatus string  `form:"listingStatus" binding:"required"`
		}

		if err := c.ShouldBind(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if !models.ValidPropertyType(models.PropertyType(input.PropertyType)) {
			c.JSON(400, gin.H{"error": "Unknown property type"})
			return
		}
		if !models.ValidListingStatus(models.ListingStatus(input.ListingStatus)) {
			c.JSON(400, gin.H{"error": "Listing status must be 'For Sale' or 'For Rent'"})
			return
		}

		// Upload any attached images before touching the database
		var imageURLs []string
		if form, err := c.MultipartForm(); err == nil {
			for _, file := range form.File["images"] {
				url, err := services.UploadImage(file, "listings")
				if err != nil {
					c.JSON(500, gin.H{"error": "Failed to upload listing image"})
					return
				}
				imageURLs = append(imageURLs, url)
			}
		}

		listing := models.Listing{
			VendorID:         vendorId,
			Title:            input.Title,
			Description:      input.Description,
			Price:            input.Price,
			Bedrooms:         input.Bedrooms,
			Bathrooms:        input.Bathrooms,
			Area:             input.Area,
			City:             input.City,
			Neighborhood:     input.Neighborhood,
			Latitude:         input.Latitude,
			Longitude:        input.Longitude,
			PropertyType:     models.PropertyType(input.PropertyType),
			ListingStatus:    models.ListingStatus(input.ListingStatus),
			ModerationStatus: models.ModerationStatusPending,
			ImageURLs:        imageURLs,
		}

		if err := db.Create(&listing).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create listing"})
			return
		}

		c.JSON(201, listing)
	}
}

// SearchListings is the public property search. Moderation and listing-status
// equality filters are pushed down to the database; the text, price and
// bedroom criteria plus sorting and paging run in memory on the result set.
func SearchListings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Where("moderation_status = ?", models.ModerationStatusActive)

		status := c.Query("status")
		if status != "" && status != listings.FilterAny {
			query = query.Where("listing_status = ?", status)
		}

		var records []models.Listing
		if err := query.Find(&records).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch listings"})
			return
		}

		criteria := listings.Criteria{
			Bedrooms:      c.Query("bedrooms"),
			Location:      c.Query("location"),
			PropertyType:  c.Query("type"),
			ListingStatus: status,
		}
		// Malformed prices are ignored, not rejected
		if v, err := strconv.ParseFloat(c.Query("priceMin"), 64); err == nil && v >= 0 {
			criteria.PriceMin = v
		}
		if v, err := strconv.ParseFloat(c.Query("priceMax"), 64); err == nil && v >= 0 {
			criteria.PriceMax = v
		}

		matched := listings.Filter(records, criteria)

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "9"))
		result := listings.Paginate(matched, listings.SortKey(c.DefaultQuery("sort", string(listings.SortNewest))), pageSize, page)

		c.JSON(200, gin.H{
			"listings":   result.Listings,
			"totalCount": result.TotalCount,
			"totalPages": result.TotalPages,
			"page":       page,
		})
	}
}

// GetListing returns a single active listing and counts the view once per
// session window.
func GetListing(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		listingId := c.Param("id")

		var listing models.Listing
		if err := db.Preload("Vendor").
			Where("moderation_status = ?", models.ModerationStatusActive).
			First(&listing, listingId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Listing not found"})
			return
		}

		// Count the view once per session window. A Redis outage only costs
		// the view count, never the page.
		sessionKey := c.GetHeader("X-Session-ID")
		if sessionKey == "" {
			sessionKey = c.ClientIP()
		}
		first, err := services.MarkListingViewed(c.Request.Context(), sessionKey, listing.ID)
		if err != nil {
			log.WithError(err).Warn("View dedup unavailable")
		} else if first {
			if err := db.Model(&listing).
				UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
				log.WithError(err).Warn("Failed to increment view count")
			} else {
				listing.Views++
			}
		}

		c.JSON(200, listing)
	}
}

// GetFeaturedListings returns the most viewed active listings, cached briefly
// in Redis for the landing page.
func GetFeaturedListings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cached, err := services.GetFeaturedListings(c.Request.Context()); err == nil {
			c.JSON(200, gin.H{"listings": cached})
			return
		}

		var featured []models.Listing
		if err := db.Where("moderation_status = ?", models.ModerationStatusActive).
			Order("views DESC").
			Limit(6).
			Find(&featured).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch featured listings"})
			return
		}

		if err := services.CacheFeaturedListings(c.Request.Context(), featured); err != nil {
			log.WithError(err).Warn("Failed to cache featured listings")
		}

		c.JSON(200, gin.H{"listings": featured})
	}
}

// GetNearbyListings finds active listings within a radius of a coordinate.
// A bounding box narrows the candidates in SQL; the exact Haversine check
// trims the corners.
func GetNearbyListings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
		lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
		if latErr != nil || lngErr != nil {
			c.JSON(400, gin.H{"error": "lat and lng query parameters are required"})
			return
		}

		radius, err := strconv.ParseFloat(c.DefaultQuery("radius", "10"), 64)
		if err != nil || radius <= 0 {
			radius = 10
		}

		bbox := utils.GetBoundingBox(lat, lng, radius)

		var candidates []models.Listing
		if err := db.Where("moderation_status = ?", models.ModerationStatusActive).
			Where("latitude BETWEEN ? AND ?", bbox.SouthWest.Lat, bbox.NorthEast.Lat).
			Where("longitude BETWEEN ? AND ?", bbox.SouthWest.Lng, bbox.NorthEast.Lng).
			Find(&candidates).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch listings"})
			return
		}

		results := make([]gin.H, 0, len(candidates))
		for _, listing := range candidates {
			distance := utils.HaversineDistance(lat, lng, listing.Latitude, listing.Longitude)
			if distance <= radius {
				results = append(results, gin.H{
					"listing":    listing,
					"distanceKm": distance,
				})
			}
		}

		c.JSON(200, gin.H{"listings": results, "count": len(results)})
	}
}

// GetVendorListings returns all of the vendor's own listings, whatever their
// moderation status.
func GetVendorListings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorId := c.GetUint("userId")

		var records []models.Listing
		if err := db.Where("vendor_id = ?", vendorId).
			Order("created_at DESC").
			Find(&records).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch listings"})
			return
		}

		c.JSON(200, records)
	}
}

// UpdateListing lets a vendor edit their own listing.
func UpdateListing(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendorId := c.GetUint("userId")
		listingId := c.Param("id")

		var listing models.Listing
		if err := db.First(&listing, listingId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Listing not found"})
			return
		}

		if listing.VendorID != vendorId {
			c.JSON(403, gin.H{"error": "Unauthorized"})
			return
		}

		var input struct {
			Title         *string  `json:"title"`
			Description   *string  `json:"description"`
			Price         *float64 `json:"price"`
			Bedrooms      *int     `json:"bedrooms"`
			Bathrooms     *int     `json:"bathrooms"`
			Area          *float64 `json:"area"`
			City          *string  `json:"city"`
			Neighborhood  *string  `json:"neighborhood"`
			PropertyType  *string  `json:"propertyType"`
			ListingStatus *string  `json:"listingStatus"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if input.Title != nil {
			listing.Title = *input.Title
		}
		if input.Description != nil {
			listing.Description = *input.Description
		}
		if input.Price != nil {
			if *input.Price < 0 {
				c.JSON(400, gin.H{"error": "Price must be non-negative"})
				return
			}
			listing.Price = *input.Price
		}
		if input.Bedrooms != nil {
			listing.Bedrooms = *input.Bedrooms
		}
		if input.Bathrooms != nil {
			listing.Bathrooms = *input.Bathrooms
		}
		if input.Area != nil {
			listing.Area = *input.Area
		}
		if input.City != nil {
			listing.City = *input.City
		}
		if input.Neighborhood != nil {
			listing.Neighborhood = *input.Neighborhood
		}
		if input.PropertyType != nil {
			if !models.ValidPropertyType(models.PropertyType(*input.PropertyType)) {
				c.JSON(400, gin.H{"error": "Unknown property type"})
				return
			}
			listing.PropertyType = models.PropertyType(*input.PropertyType)
		}
		if input.ListingStatus != nil {
			if !models.ValidListingStatus(models.ListingStatus(*input.ListingStatus)) {
				c.JSON(400, gin.H{"error": "Listing status must be 'For Sale' or 'For Rent'"})
				return
			}
			listing.ListingStatus = models.ListingStatus(*input.ListingStatus)
		}

		if err := db.Save(&listing).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update listing"})
			return
		}

		if err := services.InvalidateFeaturedListings(c.Request.Context()); err != nil {
			log.WithError(err).Warn("Failed to invalidate featured cache")
		}

		c.JSON(200, listing)
	}
}

// DeleteListing removes a listing. Vendors may delete their own; admins may
// delete any.
func DeleteListing(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userType := c.GetString("userType")
		listingId := c.Param("id")

		var listing models.Listing
		if err := db.First(&listing, listingId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Listing not found"})
			return
		}

		if listing.VendorID != userId && userType != string(models.UserTypeAdmin) {
			c.JSON(403, gin.H{"error": "Unauthorized"})
			return
		}

		for _, url := range listing.ImageURLs {
			if err := services.DeleteImage(url); err != nil {
				log.WithError(err).WithField("url", url).Warn("Failed to delete listing image")
			}
		}

		if err := db.Delete(&listing).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete listing"})
			return
		}

		if err := services.InvalidateFeaturedListings(c.Request.Context()); err != nil {
			log.WithError(err).Warn("Failed to invalidate featured cache")
		}

		c.JSON(200, gin.H{"message": "Listing deleted"})
	}
}
