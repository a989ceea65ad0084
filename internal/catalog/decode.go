package catalog

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/kirana-storefront/internal/domain/product"
)

// ParseProducts decodes the product feed. The payload must be an array of
// product-shaped records; anything else is an error.
func ParseProducts(data []byte) ([]product.Product, error) {
	d := jx.DecodeBytes(data)
	if d.Next() != jx.Array {
		return nil, errors.New("payload is not a product array")
	}

	var products []product.Product
	err := d.Arr(func(d *jx.Decoder) error {
		p, err := decodeProduct(d)
		if err != nil {
			return err
		}
		products = append(products, p)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	return products, nil
}

func decodeProduct(d *jx.Decoder) (product.Product, error) {
	var p product.Product
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			p.ID, err = d.Str()
		case "name":
			p.Name, err = d.Str()
		case "price":
			p.Price, err = decodeNum(d)
		case "originalPrice":
			p.OriginalPrice, err = decodeNum(d)
		case "discount":
			p.Discount, err = d.Int()
		case "category":
			var raw string
			if raw, err = d.Str(); err == nil {
				p.Category, err = product.ParseCategory(raw)
			}
		case "unit":
			p.Unit, err = d.Str()
		case "image":
			p.Image, err = d.Str()
		case "description":
			p.Description, err = d.Str()
		case "features":
			err = d.Arr(func(d *jx.Decoder) error {
				f, err := d.Str()
				if err != nil {
					return err
				}
				p.Features = append(p.Features, f)
				return nil
			})
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return product.Product{}, err
	}
	if p.ID == "" || p.Name == "" {
		return product.Product{}, errors.New("product record missing id or name")
	}
	return p, nil
}

func decodeNum(d *jx.Decoder) (decimal.Decimal, error) {
	n, err := d.Num()
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromString(n.String())
}
