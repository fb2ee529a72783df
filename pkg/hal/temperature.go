// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Murray Kopit

package hal

// RP2040 internal temperature sensor characteristics (datasheet section
// 4.9.5): the sensor voltage is 0.706 V at 27 C with a slope of -1.721 mV
// per degree, read through a 12-bit ADC against a 3.3 V reference.
const (
	adcResolution        = 4096
	voltageReference     = 3.3
	tempSensorVoltage27C = 0.706
	tempSensorSlope      = 0.001721
)

// ConvertTemperature converts a raw 12-bit ADC count from the temperature
// channel into degrees Celsius.
func ConvertTemperature(raw uint16) float64 {
	voltage := float64(raw) * voltageReference / adcResolution
	return 27.0 - (voltage-tempSensorVoltage27C)/tempSensorSlope
}

// rawForTemperature is the inverse conversion, used by the simulated ADC.
func rawForTemperature(celsius float64) uint16 {
	voltage := tempSensorVoltage27C + (27.0-celsius)*tempSensorSlope
	raw := voltage * adcResolution / voltageReference
	if raw < 0 {
		return 0
	}
	if raw > adcResolution-1 {
		return adcResolution - 1
	}
	return uint16(raw)
}
