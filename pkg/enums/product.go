package enums

import "fmt"

// ProductCategory represents the device categories carried in the catalog.
type ProductCategory string

const (
	ProductCategoryPhone     ProductCategory = "phone"
	ProductCategoryLaptop    ProductCategory = "laptop"
	ProductCategoryTablet    ProductCategory = "tablet"
	ProductCategoryAccessory ProductCategory = "accessory"
	ProductCategoryOther     ProductCategory = "other"
)

var validProductCategories = []ProductCategory{
	ProductCategoryPhone,
	ProductCategoryLaptop,
	ProductCategoryTablet,
	ProductCategoryAccessory,
	ProductCategoryOther,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// ProductCondition grades a certified pre-owned unit.
type ProductCondition string

const (
	ProductConditionLikeNew ProductCondition = "like_new"
	ProductConditionGood    ProductCondition = "good"
	ProductConditionFair    ProductCondition = "fair"
)

var validProductConditions = []ProductCondition{
	ProductConditionLikeNew,
	ProductConditionGood,
	ProductConditionFair,
}

// String implements fmt.Stringer.
func (c ProductCondition) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCondition.
func (c ProductCondition) IsValid() bool {
	for _, candidate := range validProductConditions {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCondition converts raw input into a ProductCondition.
func ParseProductCondition(value string) (ProductCondition, error) {
	for _, candidate := range validProductConditions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product condition %q", value)
}
