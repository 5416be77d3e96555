package snowball

// lot represents a single purchase of a security, used for cost basis calculations.
type lot struct {
	Date     Date
	Quantity Quantity
	Cost     Money // Total cost of the lot, fees included.
}

type lots []lot

// quantity returns the total number of shares in the lots.
func (l lots) quantity() Quantity {
	var q Quantity
	for _, lt := range l {
		q = q.Add(lt.Quantity)
	}
	return q
}

// cost returns the total cost of the lots.
func (l lots) cost() Money {
	var c Money
	for _, lt := range l {
		c = c.Add(lt.Cost)
	}
	return c
}

// merged returns the lots collapsed into a single lot at their average cost.
func (l lots) merged() lots {
	if len(l) <= 1 {
		return l
	}
	return lots{{Date: l[0].Date, Quantity: l.quantity(), Cost: l.cost()}}
}

// fifoCostOfSelling calculates the cost of selling a quantity of shares using FIFO.
func (l lots) fifoCostOfSelling(quantityToSell Quantity) Money {
	var costOfSoldShares Money

	for _, currentLot := range l {
		if currentLot.Quantity.GreaterThan(quantityToSell) {
			// Partial sale from this lot
			costOfSoldPortion := currentLot.Cost.Mul(quantityToSell).Div(currentLot.Quantity)
			return costOfSoldShares.Add(costOfSoldPortion)
		}
		// Full sale of this lot
		costOfSoldShares = costOfSoldShares.Add(currentLot.Cost)
		quantityToSell = quantityToSell.Sub(currentLot.Quantity)
	}
	return costOfSoldShares
}

// sell reduces the available lots by a given quantity to sell using the FIFO method.
func (l lots) sell(quantityToSell Quantity) lots {
	var remainingLots lots

	for _, currentLot := range l {
		if quantityToSell.IsZero() {
			remainingLots = append(remainingLots, currentLot)
			continue
		}

		if currentLot.Quantity.GreaterThan(quantityToSell) {
			// Partial sale from this lot
			costOfSoldPortion := currentLot.Cost.Mul(quantityToSell).Div(currentLot.Quantity)
			remainingLots = append(remainingLots, lot{
				Date:     currentLot.Date,
				Quantity: currentLot.Quantity.Sub(quantityToSell),
				Cost:     currentLot.Cost.Sub(costOfSoldPortion),
			})
			quantityToSell = Quantity{}
		} else {
			// Full sale of this lot
			quantityToSell = quantityToSell.Sub(currentLot.Quantity)
		}
	}
	return remainingLots
}

// scale multiplies every lot quantity by num/den, leaving costs unchanged.
func (l lots) scale(num, den Quantity) {
	for i := range l {
		l[i].Quantity = l[i].Quantity.Mul(num).Div(den)
	}
}
