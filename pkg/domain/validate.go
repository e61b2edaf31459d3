package domain

import "strings"

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return InvalidArgumentError{Field: field, Reason: "required"}
	}
	return nil
}

func (p Person) Validate() error {
	if err := requireText("name", p.Name); err != nil {
		return err
	}
	return requireText("phone", p.Phone)
}

func (b Bidder) Validate() error {
	if err := requireText("name", b.Name); err != nil {
		return err
	}
	return requireText("phone", b.Phone)
}

func (s Seller) Validate() error {
	if err := requireText("name", s.Name); err != nil {
		return err
	}
	return requireText("phone", s.Phone)
}

func (p Property) Validate() error {
	if err := requireText("address", p.Address); err != nil {
		return err
	}
	if p.SellerID == "" {
		return InvalidArgumentError{Field: "seller_id", Reason: "required"}
	}
	if p.AskingPrice < 0 {
		return InvalidArgumentError{Field: "asking_price", Reason: "must not be negative"}
	}
	if p.Status != "" && !p.Status.Valid() {
		return InvalidArgumentError{Field: "status", Reason: "unknown status " + string(p.Status)}
	}
	return nil
}

func (b Bid) Validate() error {
	switch {
	case b.PropertyID == "":
		return InvalidArgumentError{Field: "property_id", Reason: "required"}
	case b.BidderID == "":
		return InvalidArgumentError{Field: "bidder_id", Reason: "required"}
	case b.Amount <= 0:
		return InvalidArgumentError{Field: "amount", Reason: "must be positive"}
	}
	return nil
}
