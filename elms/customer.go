package elms

// opt tracks whether an optional field was actually provided. An empty
// string handed to a setter counts as absent, since the fulfillment
// service omits empty fields from the customer record entirely.
type opt struct {
	value string
	ok    bool
}

func (o *opt) set(v string) {
	o.value = v
	o.ok = v != ""
}

// Customer accumulates billing and delivery details for one order.
// The zero value is ready to use; Record validates completeness.
type Customer struct {
	name    opt
	surname opt
	street  opt
	city    opt
	zip     opt
	country opt

	company opt
	taxID   opt
	vatID   opt
	email   opt
	phone   opt

	deliveryName    opt
	deliverySurname opt
	deliveryStreet  opt
	deliveryCity    opt
	deliveryZip     opt
	deliveryCountry opt
	deliveryCompany opt
	deliveryEmail   opt
	deliveryPhone   opt
}

// SetIdentity stores the required billing identity and address.
func (c *Customer) SetIdentity(name, surname, street, city, zip, country string) error {
	if !checkCountry(country) {
		return validationErrorf("undefined country code")
	}
	if !checkZip(zip) {
		return validationErrorf("wrong zip format, only 5 digits allowed")
	}
	c.name.set(name)
	c.surname.set(surname)
	c.street.set(street)
	c.city.set(city)
	c.zip.set(zip)
	c.country.set(country)
	return nil
}

// SetCompany stores invoicing company details. Purely informational.
func (c *Customer) SetCompany(company, taxID, vatID string) {
	c.company.set(company)
	c.taxID.set(taxID)
	c.vatID.set(vatID)
}

// SetContact stores billing contact details.
func (c *Customer) SetContact(email, phone string) error {
	if !checkEmail(email) {
		return validationErrorf("invalid email")
	}
	c.email.set(email)
	c.phone.set(phone)
	return nil
}

// SetDeliveryAddress stores a delivery address independent of the billing one.
func (c *Customer) SetDeliveryAddress(name, surname, street, city, zip, country string) error {
	if !checkCountry(country) {
		return validationErrorf("undefined country code")
	}
	if !checkZip(zip) {
		return validationErrorf("wrong zip format, only 5 digits allowed")
	}
	c.deliveryName.set(name)
	c.deliverySurname.set(surname)
	c.deliveryStreet.set(street)
	c.deliveryCity.set(city)
	c.deliveryZip.set(zip)
	c.deliveryCountry.set(country)
	return nil
}

// SetDeliveryCompany stores the company name at the delivery address.
func (c *Customer) SetDeliveryCompany(company string) {
	c.deliveryCompany.set(company)
}

// SetDeliveryContact stores contact details for the delivery address.
func (c *Customer) SetDeliveryContact(email, phone string) error {
	if !checkEmail(email) {
		return validationErrorf("invalid delivery email")
	}
	c.deliveryEmail.set(email)
	c.deliveryPhone.set(phone)
	return nil
}

// Record validates completeness and produces the wire customer map.
// Optional fields that were never provided are left out entirely.
func (c *Customer) Record() (map[string]string, error) {
	if !c.name.ok || !c.surname.ok || !c.street.ok || !c.city.ok || !c.country.ok || !c.zip.ok {
		return nil, validationErrorf("customer is not set properly")
	}

	record := map[string]string{
		"name":        c.name.value,
		"surname":     c.surname.value,
		"street":      c.street.value,
		"city":        c.city.value,
		"country":     c.country.value,
		"postal_code": c.zip.value,
	}

	optionals := []struct {
		key   string
		field opt
	}{
		{"company", c.company},
		{"ic", c.taxID},
		{"dic", c.vatID},
		{"email", c.email},
		{"phone", c.phone},
		{"del_name", c.deliveryName},
		{"del_surname", c.deliverySurname},
		{"del_street", c.deliveryStreet},
		{"del_city", c.deliveryCity},
		{"del_postal_code", c.deliveryZip},
		{"del_country", c.deliveryCountry},
		{"del_company", c.deliveryCompany},
		{"del_email", c.deliveryEmail},
		{"del_phone", c.deliveryPhone},
	}
	for _, o := range optionals {
		if o.field.ok {
			record[o.key] = o.field.value
		}
	}

	return record, nil
}
