package chat

// SchemaDescriptor is the fixed description of the one analytical table
// the assistant may query. It is embedded verbatim into the SQL synthesis
// prompt and never mutated at runtime.
const SchemaDescriptor = `Table Name: logistics_maintenance_predictions

Columns:
- Vehicle_ID (int): Unique identifier for each vehicle
- Make_and_Model (string): Vehicle make and model
- Vehicle_Type (string): Type of vehicle (e.g., Truck, Van)
- Usage_Hours (int): Total hours the vehicle has been in use
- Route_Info (string): Information about routes
- Load_Capacity (double): Maximum load capacity
- Actual_Load (double): Current or actual load
- Last_Maintenance_Date (date): Date of last maintenance
- Maintenance_Type (string): Type of maintenance performed
- Maintenance_Cost (double): Cost of maintenance
- Engine_Temperature (double): Engine temperature in °C
- Tire_Pressure (double): Tire pressure
- Fuel_Consumption (double): Fuel consumption metrics
- Battery_Status (double): Battery status percentage
- Vibration_Levels (double): Vibration levels
- Oil_Quality (double): Oil quality rating
- Brake_Condition (string): Condition of brakes
- Road_Conditions (string): Road conditions
- Impact_on_Efficiency (double): Impact on vehicle efficiency
- Predictive_Score (double): Predictive maintenance score
- Maintenance_Required (bigint): 1 if maintenance required, 0 otherwise
- Failure_Type (string): Type of potential failure
- Risk_Factors (string): Risk factors for maintenance`
