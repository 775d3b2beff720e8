package domain

// ValidEAN reports whether code is an EAN-8, UPC-A, EAN-13 or GTIN-14 with a correct check digit.
func ValidEAN(code string) bool {
	switch len(code) {
	case 8, 12, 13, 14:
	default:
		return false
	}
	sum := 0
	// Weights alternate 3,1 starting from the digit left of the check digit.
	for i := len(code) - 2; i >= 0; i-- {
		d := int(code[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		if (len(code)-2-i)%2 == 0 {
			d *= 3
		}
		sum += d
	}
	check := int(code[len(code)-1] - '0')
	if check < 0 || check > 9 {
		return false
	}
	return (10-sum%10)%10 == check
}

var nipWeights = [9]int{6, 5, 7, 2, 3, 4, 5, 6, 7}

// ValidNIP reports whether nip is a 10-digit Polish tax number with a correct check digit.
func ValidNIP(nip string) bool {
	if len(nip) != 10 {
		return false
	}
	sum := 0
	for i := 0; i < 10; i++ {
		if nip[i] < '0' || nip[i] > '9' {
			return false
		}
		if i < 9 {
			sum += int(nip[i]-'0') * nipWeights[i]
		}
	}
	check := sum % 11
	return check != 10 && check == int(nip[9]-'0')
}
